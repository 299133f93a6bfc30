package tax

import (
	"testing"

	"github.com/shopspring/decimal"
)

// TestSlabTaxNewRegimeFY2025 checks the slab walk for the FY 2025-2026 new
// regime before the rebate is applied.
func TestSlabTaxNewRegimeFY2025(t *testing.T) {
	policy := PolicyFor(RegimeNew, FY2025)

	got := policy.Tax(decimal.NewFromInt(925000))
	if !got.Equal(decimal.NewFromInt(48750)) {
		t.Fatalf("expected 48750, got %s", got)
	}

	got = policy.Tax(decimal.NewFromInt(1500000))
	if !got.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("expected 150000, got %s", got)
	}

	got = policy.Tax(decimal.NewFromInt(1600000))
	if !got.Equal(decimal.NewFromInt(175000)) {
		t.Fatalf("expected 175000, got %s", got)
	}
}

// TestSlabTaxNewRegimeFY2024 checks that the top marginal rate is 30% for
// FY 2024-2025.
func TestSlabTaxNewRegimeFY2024(t *testing.T) {
	policy := PolicyFor(RegimeNew, FY2024)

	got := policy.Tax(decimal.NewFromInt(1600000))
	if !got.Equal(decimal.NewFromInt(180000)) {
		t.Fatalf("expected 180000, got %s", got)
	}

	got = policy.Tax(decimal.NewFromInt(700000))
	if !got.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("expected 25000, got %s", got)
	}
}

// TestSlabTaxOldRegime checks the old-regime slab walk.
func TestSlabTaxOldRegime(t *testing.T) {
	policy := PolicyFor(RegimeOld, FY2025)

	got := policy.Tax(decimal.NewFromInt(700000))
	if !got.Equal(decimal.NewFromInt(52500)) {
		t.Fatalf("expected 52500, got %s", got)
	}

	got = policy.Tax(decimal.NewFromInt(1200000))
	if !got.Equal(decimal.NewFromInt(172500)) {
		t.Fatalf("expected 172500, got %s", got)
	}
}

// TestSlabTaxZeroIncome checks that incomes inside the nil-rate slab carry no
// tax.
func TestSlabTaxZeroIncome(t *testing.T) {
	if got := PolicyFor(RegimeNew, FY2025).Tax(decimal.Zero); !got.IsZero() {
		t.Fatalf("expected zero tax, got %s", got)
	}

	if got := PolicyFor(RegimeOld, FY2024).Tax(decimal.NewFromInt(250000)); !got.IsZero() {
		t.Fatalf("expected zero tax, got %s", got)
	}
}

// TestStandardDeduction checks that only the FY 2025-2026 new regime gets the
// raised standard deduction.
func TestStandardDeduction(t *testing.T) {
	if got := PolicyFor(RegimeNew, FY2025).StandardDeduction; !got.Equal(decimal.NewFromInt(75000)) {
		t.Fatalf("expected 75000, got %s", got)
	}

	if got := PolicyFor(RegimeNew, FY2024).StandardDeduction; !got.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected 50000, got %s", got)
	}

	if got := PolicyFor(RegimeOld, FY2025).StandardDeduction; !got.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected 50000, got %s", got)
	}

	if got := PolicyFor(RegimeOld, FY2024).StandardDeduction; !got.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected 50000, got %s", got)
	}
}

// TestRebateLimits checks the rebate thresholds per regime and year.
func TestRebateLimits(t *testing.T) {
	if got := PolicyFor(RegimeNew, FY2025).RebateLimit; !got.Equal(decimal.NewFromInt(1200000)) {
		t.Fatalf("expected 1200000, got %s", got)
	}

	if got := PolicyFor(RegimeNew, FY2024).RebateLimit; !got.Equal(decimal.NewFromInt(700000)) {
		t.Fatalf("expected 700000, got %s", got)
	}

	if got := PolicyFor(RegimeOld, FY2024).RebateLimit; !got.Equal(decimal.NewFromInt(500000)) {
		t.Fatalf("expected 500000, got %s", got)
	}
}

// TestPolicyForUnknownYear checks the fallback to FY 2024-2025 parameters.
func TestPolicyForUnknownYear(t *testing.T) {
	policy := PolicyFor(RegimeNew, FinancialYear("FY 2023-2024"))

	if !policy.RebateLimit.Equal(decimal.NewFromInt(700000)) {
		t.Fatalf("expected 700000, got %s", policy.RebateLimit)
	}
}

// TestMetadataLists checks the order of the published option lists.
func TestMetadataLists(t *testing.T) {
	regimes := Regimes()
	if len(regimes) != 2 || regimes[0] != RegimeNew {
		t.Fatalf("unexpected regimes: %v", regimes)
	}

	years := FinancialYears()
	if len(years) != 2 || years[0] != FY2025 {
		t.Fatalf("unexpected years: %v", years)
	}

	if len(AgeGroups()) != 3 {
		t.Fatalf("unexpected age groups: %v", AgeGroups())
	}
}
