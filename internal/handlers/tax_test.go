package handlers

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

// TestMapRegime checks the regime mapping.
func TestMapRegime(t *testing.T) {
	value, ok := mapRegime("new")
	if !ok || value != tax.RegimeNew {
		t.Fatalf("expected new, got %v (ok=%v)", value, ok)
	}

	value, ok = mapRegime("old")
	if !ok || value != tax.RegimeOld {
		t.Fatalf("expected old, got %v (ok=%v)", value, ok)
	}

	value, ok = mapRegime(" New ")
	if !ok || value != tax.RegimeNew {
		t.Fatalf("expected new for padded input, got %v (ok=%v)", value, ok)
	}

	value, ok = mapRegime("")
	if !ok || value != tax.RegimeNew {
		t.Fatalf("expected new as default, got %v (ok=%v)", value, ok)
	}

	if _, ok := mapRegime("hybrid"); ok {
		t.Fatal("expected invalid regime")
	}
}

// TestMapFinancialYear checks the financial year mapping.
func TestMapFinancialYear(t *testing.T) {
	value, ok := mapFinancialYear("FY 2025-2026")
	if !ok || value != tax.FY2025 {
		t.Fatalf("expected FY2025, got %v (ok=%v)", value, ok)
	}

	value, ok = mapFinancialYear("FY 2024-2025")
	if !ok || value != tax.FY2024 {
		t.Fatalf("expected FY2024, got %v (ok=%v)", value, ok)
	}

	value, ok = mapFinancialYear("")
	if !ok || value != tax.FY2025 {
		t.Fatalf("expected latest year as default, got %v (ok=%v)", value, ok)
	}

	if _, ok := mapFinancialYear("FY 2023-2024"); ok {
		t.Fatal("expected invalid financial year")
	}
}

// TestMapAgeGroup checks the age group mapping.
func TestMapAgeGroup(t *testing.T) {
	value, ok := mapAgeGroup("0-60")
	if !ok || value != tax.AgeGroupBelow60 {
		t.Fatalf("expected 0-60, got %v (ok=%v)", value, ok)
	}

	value, ok = mapAgeGroup("60-80")
	if !ok || value != tax.AgeGroup60To80 {
		t.Fatalf("expected 60-80, got %v (ok=%v)", value, ok)
	}

	value, ok = mapAgeGroup("80+")
	if !ok || value != tax.AgeGroupAbove80 {
		t.Fatalf("expected 80+, got %v (ok=%v)", value, ok)
	}

	value, ok = mapAgeGroup("")
	if !ok || value != "" {
		t.Fatalf("expected empty age group allowed, got %v (ok=%v)", value, ok)
	}

	if _, ok := mapAgeGroup("30-40"); ok {
		t.Fatal("expected invalid age group")
	}
}

// TestBuildTaxInput checks assembly and validation of the evaluation input.
func TestBuildTaxInput(t *testing.T) {
	income := tax.IncomeDetails{Salary: tax.NewAmount(decimal.NewFromInt(1000000))}

	input, err := buildTaxInput("old", "FY 2024-2025", "60-80", income, tax.Deductions{})
	if err != nil {
		t.Fatalf("build input: %v", err)
	}
	if input.Regime != tax.RegimeOld || input.FinancialYear != tax.FY2024 || input.AgeGroup != tax.AgeGroup60To80 {
		t.Fatalf("unexpected input: %+v", input)
	}
	if !input.Income.Salary.Equal(income.Salary.Decimal) {
		t.Fatalf("expected salary preserved, got %s", input.Income.Salary)
	}

	input, err = buildTaxInput("", "", "", income, tax.Deductions{})
	if err != nil {
		t.Fatalf("build input with defaults: %v", err)
	}
	if input.Regime != tax.RegimeNew || input.FinancialYear != tax.FY2025 || input.AgeGroup != "" {
		t.Fatalf("unexpected defaults: %+v", input)
	}

	if _, err := buildTaxInput("flat", "", "", income, tax.Deductions{}); err == nil {
		t.Fatal("expected error for unknown regime")
	}

	if _, err := buildTaxInput("", "FY 1999-2000", "", income, tax.Deductions{}); err == nil {
		t.Fatal("expected error for unknown year")
	}

	if _, err := buildTaxInput("", "", "child", income, tax.Deductions{}); err == nil {
		t.Fatal("expected error for unknown age group")
	}
}
