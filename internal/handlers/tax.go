package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/cache"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

type TaxHandler struct {
	Cache cache.Store
}

// NewTaxHandler creates the handler for the public calculation endpoints.
func NewTaxHandler(store cache.Store) *TaxHandler {
	return &TaxHandler{Cache: store}
}

type CalculateRequest struct {
	Regime        string            `json:"regime"`
	FinancialYear string            `json:"financial_year"`
	AgeGroup      string            `json:"age_group"`
	Income        tax.IncomeDetails `json:"income"`
	Deductions    tax.Deductions    `json:"deductions"`
}

type CompareRequest struct {
	FinancialYear string            `json:"financial_year"`
	AgeGroup      string            `json:"age_group"`
	Income        tax.IncomeDetails `json:"income"`
	Deductions    tax.Deductions    `json:"deductions"`
}

type TaxBreakdownResponse struct {
	Regime        tax.Regime        `json:"regime"`
	FinancialYear tax.FinancialYear `json:"financial_year"`
	AgeGroup      tax.AgeGroup      `json:"age_group,omitempty"`
	Result        tax.Result        `json:"result"`
	Cached        bool              `json:"cached"`
}

type CompareResponse struct {
	FinancialYear tax.FinancialYear `json:"financial_year"`
	AgeGroup      tax.AgeGroup      `json:"age_group,omitempty"`
	New           tax.Result        `json:"new"`
	Old           tax.Result        `json:"old"`
	Recommended   tax.Regime        `json:"recommended"`
	Savings       tax.Amount        `json:"savings"`
}

type YearsResponse struct {
	Years []tax.FinancialYear `json:"years"`
}

type RegimesResponse struct {
	Regimes   []tax.Regime   `json:"regimes"`
	AgeGroups []tax.AgeGroup `json:"age_groups"`
}

type SlabItem struct {
	UpTo *tax.Amount `json:"upTo"`
	Rate tax.Amount  `json:"rate"`
}

type SlabsResponse struct {
	Regime            tax.Regime        `json:"regime"`
	FinancialYear     tax.FinancialYear `json:"financial_year"`
	Slabs             []SlabItem        `json:"slabs"`
	RebateLimit       tax.Amount        `json:"rebateLimit"`
	StandardDeduction tax.Amount        `json:"standardDeduction"`
	CessRate          tax.Amount        `json:"cessRate"`
}

// Calculate runs one evaluation and returns the full breakdown. Identical
// inputs are served from the cache.
func (h *TaxHandler) Calculate(c echo.Context) error {
	var req CalculateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	input, err := buildTaxInput(req.Regime, req.FinancialYear, req.AgeGroup, req.Income, req.Deductions)
	if err != nil {
		return badRequest(c, err.Error())
	}

	key := input.Fingerprint()
	if h.Cache != nil {
		if cached, ok := h.Cache.Get(c.Request().Context(), key); ok {
			var result tax.Result
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return c.JSON(http.StatusOK, TaxBreakdownResponse{
					Regime:        input.Regime,
					FinancialYear: input.FinancialYear,
					AgeGroup:      input.AgeGroup,
					Result:        result,
					Cached:        true,
				})
			}
		}
	}

	result := tax.Evaluate(input)

	if h.Cache != nil {
		payload, err := json.Marshal(result)
		if err == nil {
			if err := h.Cache.Set(c.Request().Context(), key, string(payload)); err != nil {
				slog.Warn("tax result cache write failed", slog.String("error", err.Error()))
			}
		}
	}

	return c.JSON(http.StatusOK, TaxBreakdownResponse{
		Regime:        input.Regime,
		FinancialYear: input.FinancialYear,
		AgeGroup:      input.AgeGroup,
		Result:        result,
		Cached:        false,
	})
}

// Compare evaluates both regimes for the same figures and recommends the
// cheaper one. A tie keeps the new regime.
func (h *TaxHandler) Compare(c echo.Context) error {
	var req CompareRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	year, ok := mapFinancialYear(req.FinancialYear)
	if !ok {
		return badRequest(c, "invalid financial year")
	}

	ageGroup, ok := mapAgeGroup(req.AgeGroup)
	if !ok {
		return badRequest(c, "invalid age group")
	}

	newResult := tax.Evaluate(tax.Input{
		Regime:        tax.RegimeNew,
		FinancialYear: year,
		AgeGroup:      ageGroup,
		Income:        req.Income,
		Deductions:    req.Deductions,
	})

	oldResult := tax.Evaluate(tax.Input{
		Regime:        tax.RegimeOld,
		FinancialYear: year,
		AgeGroup:      ageGroup,
		Income:        req.Income,
		Deductions:    req.Deductions,
	})

	recommended := tax.RegimeNew
	if oldResult.TaxPayable.LessThan(newResult.TaxPayable.Decimal) {
		recommended = tax.RegimeOld
	}

	savings := newResult.TaxPayable.Sub(oldResult.TaxPayable.Decimal).Abs()

	return c.JSON(http.StatusOK, CompareResponse{
		FinancialYear: year,
		AgeGroup:      ageGroup,
		New:           newResult,
		Old:           oldResult,
		Recommended:   recommended,
		Savings:       tax.NewAmount(savings),
	})
}

// Years lists the supported financial years.
func (h *TaxHandler) Years(c echo.Context) error {
	return c.JSON(http.StatusOK, YearsResponse{Years: tax.FinancialYears()})
}

// Regimes lists the supported regimes and age groups.
func (h *TaxHandler) Regimes(c echo.Context) error {
	return c.JSON(http.StatusOK, RegimesResponse{
		Regimes:   tax.Regimes(),
		AgeGroups: tax.AgeGroups(),
	})
}

// Slabs returns the slab table and related parameters for a regime and year.
func (h *TaxHandler) Slabs(c echo.Context) error {
	regime, ok := mapRegime(c.QueryParam("regime"))
	if !ok {
		return badRequest(c, "invalid regime")
	}

	year, ok := mapFinancialYear(c.QueryParam("financial_year"))
	if !ok {
		return badRequest(c, "invalid financial year")
	}

	policy := tax.PolicyFor(regime, year)

	slabs := make([]SlabItem, 0, len(policy.Slabs))
	for _, slab := range policy.Slabs {
		item := SlabItem{Rate: tax.NewAmount(slab.Rate)}
		if !slab.UpTo.IsZero() {
			upTo := tax.NewAmount(slab.UpTo)
			item.UpTo = &upTo
		}
		slabs = append(slabs, item)
	}

	return c.JSON(http.StatusOK, SlabsResponse{
		Regime:            regime,
		FinancialYear:     year,
		Slabs:             slabs,
		RebateLimit:       tax.NewAmount(policy.RebateLimit),
		StandardDeduction: tax.NewAmount(policy.StandardDeduction),
		CessRate:          tax.NewAmount(policy.CessRate),
	})
}

func buildTaxInput(regime, year, ageGroup string, income tax.IncomeDetails, deductions tax.Deductions) (tax.Input, error) {
	mappedRegime, ok := mapRegime(regime)
	if !ok {
		return tax.Input{}, errors.New("invalid regime")
	}

	mappedYear, ok := mapFinancialYear(year)
	if !ok {
		return tax.Input{}, errors.New("invalid financial year")
	}

	mappedAgeGroup, ok := mapAgeGroup(ageGroup)
	if !ok {
		return tax.Input{}, errors.New("invalid age group")
	}

	return tax.Input{
		Regime:        mappedRegime,
		FinancialYear: mappedYear,
		AgeGroup:      mappedAgeGroup,
		Income:        income,
		Deductions:    deductions,
	}, nil
}

// A blank regime falls back to the new regime, the form default.
func mapRegime(value string) (tax.Regime, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "new":
		return tax.RegimeNew, true
	case "old":
		return tax.RegimeOld, true
	}
	return "", false
}

// A blank year falls back to the latest supported financial year.
func mapFinancialYear(value string) (tax.FinancialYear, bool) {
	switch strings.TrimSpace(value) {
	case "":
		return tax.FY2025, true
	case string(tax.FY2025):
		return tax.FY2025, true
	case string(tax.FY2024):
		return tax.FY2024, true
	}
	return "", false
}

// The age group is optional; it is recorded but does not change the result.
func mapAgeGroup(value string) (tax.AgeGroup, bool) {
	switch strings.TrimSpace(value) {
	case "":
		return "", true
	case string(tax.AgeGroupBelow60):
		return tax.AgeGroupBelow60, true
	case string(tax.AgeGroup60To80):
		return tax.AgeGroup60To80, true
	case string(tax.AgeGroupAbove80):
		return tax.AgeGroupAbove80, true
	}
	return "", false
}
