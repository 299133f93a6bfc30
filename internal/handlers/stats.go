package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/auth"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/repository"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

type StatsHandler struct {
	Stats *repository.StatsRepository
}

// NewStatsHandler creates the statistics handler.
func NewStatsHandler(stats *repository.StatsRepository) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

type OverviewResponse struct {
	TotalEstimates     int        `json:"total_estimates"`
	NewRegimeEstimates int        `json:"new_regime_estimates"`
	OldRegimeEstimates int        `json:"old_regime_estimates"`
	ZeroTaxEstimates   int        `json:"zero_tax_estimates"`
	TotalIncome        tax.Amount `json:"total_income"`
	TotalPayable       tax.Amount `json:"total_payable"`
}

type YearBreakdownItem struct {
	FinancialYear  tax.FinancialYear `json:"financial_year"`
	Estimates      int               `json:"estimates"`
	AveragePayable tax.Amount        `json:"average_payable"`
	MaxPayable     tax.Amount        `json:"max_payable"`
}

type ByYearResponse struct {
	Years []YearBreakdownItem `json:"years"`
}

// Overview returns aggregate figures over the user's saved estimates.
func (h *StatsHandler) Overview(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.Stats.Overview(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		TotalEstimates:     stats.TotalEstimates,
		NewRegimeEstimates: stats.NewRegimeEstimates,
		OldRegimeEstimates: stats.OldRegimeEstimates,
		ZeroTaxEstimates:   stats.ZeroTaxEstimates,
		TotalIncome:        tax.NewAmount(tax.FromPaise(stats.TotalIncomePaise)),
		TotalPayable:       tax.NewAmount(tax.FromPaise(stats.TotalPayablePaise)),
	})
}

// ByYear returns the user's estimates grouped by financial year.
func (h *StatsHandler) ByYear(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	breakdown, err := h.Stats.ByYear(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	years := make([]YearBreakdownItem, 0, len(breakdown))
	for _, row := range breakdown {
		years = append(years, YearBreakdownItem{
			FinancialYear:  row.FinancialYear,
			Estimates:      row.Estimates,
			AveragePayable: tax.NewAmount(tax.FromPaise(row.AveragePayablePaise)),
			MaxPayable:     tax.NewAmount(tax.FromPaise(row.MaxPayablePaise)),
		})
	}

	return c.JSON(http.StatusOK, ByYearResponse{Years: years})
}
