package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/auth"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/repository"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

type AdminHandler struct {
	Repo *repository.AdminRepository
}

// NewAdminHandler creates the handler for the admin endpoints.
func NewAdminHandler(repo *repository.AdminRepository) *AdminHandler {
	return &AdminHandler{Repo: repo}
}

type AdminUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

type AdminUsersResponse struct {
	Total int                 `json:"total"`
	Users []AdminUserResponse `json:"users"`
}

type AdminEstimateResponse struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	Label         *string           `json:"label,omitempty"`
	FinancialYear tax.FinancialYear `json:"financial_year"`
	Regime        tax.Regime        `json:"regime"`
	AgeGroup      *string           `json:"age_group,omitempty"`
	TotalIncome   tax.Amount        `json:"total_income"`
	TaxableIncome tax.Amount        `json:"taxable_income"`
	TaxPayable    tax.Amount        `json:"tax_payable"`
	CreatedAt     string            `json:"created_at"`
	Income        json.RawMessage   `json:"income,omitempty"`
	Deductions    json.RawMessage   `json:"deductions,omitempty"`
	Result        json.RawMessage   `json:"result,omitempty"`
}

type AdminEstimatesResponse struct {
	Total     int                     `json:"total"`
	Estimates []AdminEstimateResponse `json:"estimates"`
}

type AdminUsageDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AdminUsageResponse struct {
	Users          int             `json:"users"`
	Estimates      int             `json:"estimates"`
	NewRegime      int             `json:"new_regime"`
	OldRegime      int             `json:"old_regime"`
	EstimatesByDay []AdminUsageDay `json:"estimates_by_day"`
}

// ListUsers returns the user list for the admin panel.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, offset, err := parsePagination(c, 50, 200)
	if err != nil {
		return badRequest(c, err.Error())
	}

	users, err := h.Repo.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return serverError(c)
	}

	total, err := h.Repo.CountUsers(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	response := make([]AdminUserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, AdminUserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt.Format(timeLayout),
			UpdatedAt: user.UpdatedAt.Format(timeLayout),
		})
	}

	return c.JSON(http.StatusOK, AdminUsersResponse{
		Total: total,
		Users: response,
	})
}

// ListEstimates returns saved estimates across all users with filters.
func (h *AdminHandler) ListEstimates(c echo.Context) error {
	limit, offset, err := parsePagination(c, 50, 200)
	if err != nil {
		return badRequest(c, err.Error())
	}

	filter := repository.EstimateFilter{}
	if raw := strings.TrimSpace(c.QueryParam("user_id")); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "invalid user_id")
		}
		filter.UserID = &parsed
	}

	if raw := strings.TrimSpace(c.QueryParam("regime")); raw != "" {
		parsed, ok := mapRegime(raw)
		if !ok {
			return badRequest(c, "invalid regime")
		}
		filter.Regime = &parsed
	}

	if raw := strings.TrimSpace(c.QueryParam("financial_year")); raw != "" {
		parsed, ok := mapFinancialYear(raw)
		if !ok {
			return badRequest(c, "invalid financial_year")
		}
		filter.FinancialYear = &parsed
	}

	includeSnapshots := false
	if raw := strings.TrimSpace(c.QueryParam("include_snapshots")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "invalid include_snapshots")
		}
		includeSnapshots = parsed
	}

	estimates, err := h.Repo.ListEstimates(c.Request().Context(), filter, limit, offset, includeSnapshots)
	if err != nil {
		return serverError(c)
	}

	total, err := h.Repo.CountEstimates(c.Request().Context(), filter)
	if err != nil {
		return serverError(c)
	}

	response := make([]AdminEstimateResponse, 0, len(estimates))
	for _, estimate := range estimates {
		item := AdminEstimateResponse{
			ID:            estimate.ID,
			UserID:        estimate.UserID,
			Label:         estimate.Label,
			FinancialYear: estimate.FinancialYear,
			Regime:        estimate.Regime,
			AgeGroup:      estimate.AgeGroup,
			TotalIncome:   tax.NewAmount(tax.FromPaise(estimate.TotalIncomePaise)),
			TaxableIncome: tax.NewAmount(tax.FromPaise(estimate.TaxableIncomePaise)),
			TaxPayable:    tax.NewAmount(tax.FromPaise(estimate.TaxPayablePaise)),
			CreatedAt:     estimate.CreatedAt.Format(timeLayout),
		}

		if includeSnapshots {
			if len(estimate.Income) > 0 {
				item.Income = json.RawMessage(estimate.Income)
			}
			if len(estimate.Deductions) > 0 {
				item.Deductions = json.RawMessage(estimate.Deductions)
			}
			if len(estimate.Result) > 0 {
				item.Result = json.RawMessage(estimate.Result)
			}
		}
		response = append(response, item)
	}

	return c.JSON(http.StatusOK, AdminEstimatesResponse{
		Total:     total,
		Estimates: response,
	})
}

// Usage returns service-wide usage aggregates.
func (h *AdminHandler) Usage(c echo.Context) error {
	days := 7
	if raw := strings.TrimSpace(c.QueryParam("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid days")
		}
		if parsed > 30 {
			parsed = 30
		}
		days = parsed
	}

	stats, err := h.Repo.UsageStats(c.Request().Context(), days)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid days")
		}
		return serverError(c)
	}

	daysResponse := make([]AdminUsageDay, 0, len(stats.EstimatesByDay))
	for _, day := range stats.EstimatesByDay {
		daysResponse = append(daysResponse, AdminUsageDay{
			Date:  day.Day.Format("2006-01-02"),
			Count: day.Count,
		})
	}

	return c.JSON(http.StatusOK, AdminUsageResponse{
		Users:          stats.Users,
		Estimates:      stats.Estimates,
		NewRegime:      stats.NewRegime,
		OldRegime:      stats.OldRegime,
		EstimatesByDay: daysResponse,
	})
}

// AdminMiddleware restricts admin routes to an email allowlist.
func AdminMiddleware(users *repository.UserRepository, emails []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		trimmed := strings.ToLower(strings.TrimSpace(email))
		if trimmed == "" {
			continue
		}
		allowed[trimmed] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := auth.UserIDFromContext(c)
			if !ok {
				return unauthorized(c)
			}

			if len(allowed) == 0 {
				return forbidden(c)
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return forbidden(c)
				}
				return serverError(c)
			}

			email := strings.ToLower(strings.TrimSpace(user.Email))
			if _, ok := allowed[email]; !ok {
				return forbidden(c)
			}

			return next(c)
		}
	}
}

func parsePagination(c echo.Context, defaultLimit, maxLimit int) (int, int, error) {
	limit := defaultLimit
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid limit")
		}
		if parsed > maxLimit {
			parsed = maxLimit
		}
		limit = parsed
	}

	offset := 0
	if raw := strings.TrimSpace(c.QueryParam("offset")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, errors.New("invalid offset")
		}
		offset = parsed
	}

	return limit, offset, nil
}
