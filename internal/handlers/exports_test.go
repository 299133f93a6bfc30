package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/models"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

func sampleEstimate(t *testing.T) models.TaxEstimate {
	t.Helper()

	input := tax.Input{
		Regime:        tax.RegimeOld,
		FinancialYear: tax.FY2025,
		Income: tax.IncomeDetails{
			Salary:           tax.NewAmount(decimal.NewFromInt(1000000)),
			ExemptAllowances: tax.NewAmount(decimal.NewFromInt(100000)),
		},
		Deductions: tax.Deductions{
			Basic80C: tax.NewAmount(decimal.NewFromInt(150000)),
		},
	}
	result := tax.Evaluate(input)

	income, err := json.Marshal(input.Income)
	if err != nil {
		t.Fatalf("marshal income: %v", err)
	}
	deductions, err := json.Marshal(input.Deductions)
	if err != nil {
		t.Fatalf("marshal deductions: %v", err)
	}
	resultSnapshot, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}

	label := "salary review"
	return models.TaxEstimate{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Label:         &label,
		FinancialYear: input.FinancialYear,
		Regime:        input.Regime,
		Income:        income,
		Deductions:    deductions,
		Result:        resultSnapshot,
		CreatedAt:     time.Now().UTC(),
	}
}

// TestWriteSummaryCSV checks the single-row summary export.
func TestWriteSummaryCSV(t *testing.T) {
	estimate := sampleEstimate(t)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeSummaryCSV(writer, estimate); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	writer.Flush()

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected header and one record, got %d rows", len(records))
	}
	if records[0][5] != "total_income" || records[0][13] != "tax_payable" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	row := records[1]
	if row[0] != estimate.ID.String() {
		t.Fatalf("expected estimate id %s, got %s", estimate.ID, row[0])
	}
	if row[1] != "salary review" {
		t.Fatalf("expected label, got %q", row[1])
	}
	if row[5] != "900000" {
		t.Fatalf("expected total income 900000, got %s", row[5])
	}
	if row[9] != "700000" {
		t.Fatalf("expected taxable income 700000, got %s", row[9])
	}
	if row[13] != "54600" {
		t.Fatalf("expected tax payable 54600, got %s", row[13])
	}
}

// TestWriteBreakdownCSV checks the per-field breakdown export.
func TestWriteBreakdownCSV(t *testing.T) {
	estimate := sampleEstimate(t)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeBreakdownCSV(writer, estimate); err != nil {
		t.Fatalf("write breakdown: %v", err)
	}
	writer.Flush()

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(records) != 26 {
		t.Fatalf("expected 26 rows, got %d", len(records))
	}

	first := records[1]
	if first[0] != "income" || first[1] != "salary" || first[2] != "1000000" {
		t.Fatalf("unexpected first row: %v", first)
	}

	last := records[25]
	if last[0] != "result" || last[1] != "tax_payable" || last[2] != "54600" {
		t.Fatalf("unexpected last row: %v", last)
	}
}
