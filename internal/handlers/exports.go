package handlers

import (
	"bytes"
	"encoding/csv"
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

const (
	exportTypeSummary   = "summary"
	exportTypeBreakdown = "breakdown"
)

const timeLayout = time.RFC3339

// ExportJSON downloads an estimate as a JSON file.
func (h *EstimateHandler) ExportJSON(c echo.Context) error {
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

	filename := "estimate-" + estimate.ID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, toEstimateResponse(estimate))
}

// ExportCSV downloads an estimate as a CSV file.
func (h *EstimateHandler) ExportCSV(c echo.Context) error {
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

	exportType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if exportType == "" {
		exportType = exportTypeSummary
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case exportTypeSummary:
		if err := writeSummaryCSV(writer, estimate); err != nil {
			return serverError(c)
		}
	case exportTypeBreakdown:
		if err := writeBreakdownCSV(writer, estimate); err != nil {
			return serverError(c)
		}
	default:
		return badRequest(c, "invalid export type")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "estimate-" + estimate.ID.String() + "-" + exportType + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeSummaryCSV(writer *csv.Writer, estimate models.TaxEstimate) error {
	var result tax.Result
	if err := json.Unmarshal(estimate.Result, &result); err != nil {
		return err
	}

	header := []string{
		"estimate_id",
		"label",
		"financial_year",
		"regime",
		"age_group",
		"total_income",
		"exempt_allowances",
		"standard_deduction",
		"chapter_via",
		"taxable_income",
		"income_tax",
		"health_education_cess",
		"surcharge",
		"tax_payable",
		"created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	label := ""
	if estimate.Label != nil {
		label = *estimate.Label
	}

	record := []string{
		estimate.ID.String(),
		label,
		string(estimate.FinancialYear),
		string(estimate.Regime),
		string(estimate.AgeGroup),
		result.TotalIncome.String(),
		result.ExemptAllowances.String(),
		result.StandardDeduction.String(),
		result.ChapterVIA.String(),
		result.TaxableIncome.String(),
		result.IncomeTax.String(),
		result.HealthEducationCess.String(),
		result.Surcharge.String(),
		result.TaxPayable.String(),
		estimate.CreatedAt.Format(timeLayout),
	}
	return writer.Write(record)
}

func writeBreakdownCSV(writer *csv.Writer, estimate models.TaxEstimate) error {
	var income tax.IncomeDetails
	if err := json.Unmarshal(estimate.Income, &income); err != nil {
		return err
	}
	var deductions tax.Deductions
	if err := json.Unmarshal(estimate.Deductions, &deductions); err != nil {
		return err
	}
	var result tax.Result
	if err := json.Unmarshal(estimate.Result, &result); err != nil {
		return err
	}

	if err := writer.Write([]string{"section", "field", "amount"}); err != nil {
		return err
	}

	rows := [][3]string{
		{"income", "salary", income.Salary.String()},
		{"income", "exempt_allowances", income.ExemptAllowances.String()},
		{"income", "interest_income", income.InterestIncome.String()},
		{"income", "home_loan_self_occupied", income.HomeLoanSelfOccupied.String()},
		{"income", "rental_income", income.RentalIncome.String()},
		{"income", "home_loan_let_out", income.HomeLoanLetOut.String()},
		{"income", "digital_assets", income.DigitalAssets.String()},
		{"income", "other_income", income.OtherIncome.String()},
		{"deductions", "basic_80c", deductions.Basic80C.String()},
		{"deductions", "deposits_80tta", deductions.Deposits80TTA.String()},
		{"deductions", "medical_80d", deductions.Medical80D.String()},
		{"deductions", "donations_80g", deductions.Donations80G.String()},
		{"deductions", "housing_80eea", deductions.Housing80EEA.String()},
		{"deductions", "nps_80ccd", deductions.NPS80CCD.String()},
		{"deductions", "nps_80ccd2", deductions.NPS80CCD2.String()},
		{"deductions", "other_deduction", deductions.OtherDeduction.String()},
		{"result", "total_income", result.TotalIncome.String()},
		{"result", "exempt_allowances", result.ExemptAllowances.String()},
		{"result", "standard_deduction", result.StandardDeduction.String()},
		{"result", "chapter_via", result.ChapterVIA.String()},
		{"result", "taxable_income", result.TaxableIncome.String()},
		{"result", "income_tax", result.IncomeTax.String()},
		{"result", "health_education_cess", result.HealthEducationCess.String()},
		{"result", "surcharge", result.Surcharge.String()},
		{"result", "tax_payable", result.TaxPayable.String()},
	}

	for _, row := range rows {
		if err := writer.Write(row[:]); err != nil {
			return err
		}
	}

	return nil
}
