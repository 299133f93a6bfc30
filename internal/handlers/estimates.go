package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/auth"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/models"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/repository"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

type EstimateHandler struct {
	Estimates *repository.EstimateRepository
}

// NewEstimateHandler creates the handler for saved estimates.
func NewEstimateHandler(estimates *repository.EstimateRepository) *EstimateHandler {
	return &EstimateHandler{Estimates: estimates}
}

type EstimateRequest struct {
	Label         string            `json:"label" validate:"max=200"`
	Regime        string            `json:"regime"`
	FinancialYear string            `json:"financial_year"`
	AgeGroup      string            `json:"age_group"`
	Income        tax.IncomeDetails `json:"income"`
	Deductions    tax.Deductions    `json:"deductions"`
}

type EstimateResponse struct {
	ID            uuid.UUID         `json:"id"`
	Label         *string           `json:"label,omitempty"`
	FinancialYear tax.FinancialYear `json:"financial_year"`
	Regime        tax.Regime        `json:"regime"`
	AgeGroup      tax.AgeGroup      `json:"age_group,omitempty"`
	Income        json.RawMessage   `json:"income"`
	Deductions    json.RawMessage   `json:"deductions"`
	Result        json.RawMessage   `json:"result"`
	CreatedAt     time.Time         `json:"created_at"`
}

type EstimatesResponse struct {
	Total     int                `json:"total"`
	Estimates []EstimateResponse `json:"estimates"`
}

// Create evaluates the submitted figures and stores the estimate together
// with its input and result snapshots.
func (h *EstimateHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req EstimateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	input, err := buildTaxInput(req.Regime, req.FinancialYear, req.AgeGroup, req.Income, req.Deductions)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result := tax.Evaluate(input)

	income, err := json.Marshal(input.Income)
	if err != nil {
		return serverError(c)
	}
	deductions, err := json.Marshal(input.Deductions)
	if err != nil {
		return serverError(c)
	}
	resultSnapshot, err := json.Marshal(result)
	if err != nil {
		return serverError(c)
	}

	var label *string
	if trimmed := strings.TrimSpace(req.Label); trimmed != "" {
		label = &trimmed
	}

	estimate := models.TaxEstimate{
		UserID:             userID,
		Label:              label,
		FinancialYear:      input.FinancialYear,
		Regime:             input.Regime,
		AgeGroup:           input.AgeGroup,
		Income:             income,
		Deductions:         deductions,
		Result:             resultSnapshot,
		TotalIncomePaise:   tax.ToPaise(result.TotalIncome.Decimal),
		TaxableIncomePaise: tax.ToPaise(result.TaxableIncome.Decimal),
		TaxPayablePaise:    tax.ToPaise(result.TaxPayable.Decimal),
	}

	created, err := h.Estimates.Create(c.Request().Context(), estimate)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toEstimateResponse(created))
}

// List returns a page of the user's estimates, newest first.
func (h *EstimateHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limit, offset, err := parsePagination(c, 50, 200)
	if err != nil {
		return badRequest(c, err.Error())
	}

	estimates, err := h.Estimates.ListByUser(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return serverError(c)
	}

	total, err := h.Estimates.CountByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]EstimateResponse, 0, len(estimates))
	for _, estimate := range estimates {
		response = append(response, toEstimateResponse(estimate))
	}

	return c.JSON(http.StatusOK, EstimatesResponse{
		Total:     total,
		Estimates: response,
	})
}

// Get returns an estimate by identifier.
func (h *EstimateHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid estimate id")
	}

	estimate, err := h.Estimates.GetByID(c.Request().Context(), userID, estimateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "estimate not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toEstimateResponse(estimate))
}

// Delete removes a saved estimate.
func (h *EstimateHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid estimate id")
	}

	if err := h.Estimates.Delete(c.Request().Context(), userID, estimateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "estimate not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func toEstimateResponse(estimate models.TaxEstimate) EstimateResponse {
	return EstimateResponse{
		ID:            estimate.ID,
		Label:         estimate.Label,
		FinancialYear: estimate.FinancialYear,
		Regime:        estimate.Regime,
		AgeGroup:      estimate.AgeGroup,
		Income:        estimate.Income,
		Deductions:    estimate.Deductions,
		Result:        estimate.Result,
		CreatedAt:     estimate.CreatedAt,
	}
}
