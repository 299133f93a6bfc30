package tax

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func rupees(v int64) Amount {
	return NewAmount(decimal.NewFromInt(v))
}

// TestTotalIncomeRegimeHandling checks that exempt allowances reduce salary
// under the old regime only.
func TestTotalIncomeRegimeHandling(t *testing.T) {
	income := IncomeDetails{
		Salary:           rupees(500000),
		ExemptAllowances: rupees(50000),
		InterestIncome:   rupees(10000),
	}

	got := TotalIncome(income, RegimeNew)
	if !got.Equal(decimal.NewFromInt(510000)) {
		t.Fatalf("expected 510000, got %s", got)
	}

	got = TotalIncome(income, RegimeOld)
	if !got.Equal(decimal.NewFromInt(460000)) {
		t.Fatalf("expected 460000, got %s", got)
	}
}

// TestTotalIncomeNotFloored checks that allowances above salary push the
// aggregate below zero.
func TestTotalIncomeNotFloored(t *testing.T) {
	income := IncomeDetails{ExemptAllowances: rupees(100000)}

	got := TotalIncome(income, RegimeOld)
	if !got.Equal(decimal.NewFromInt(-100000)) {
		t.Fatalf("expected -100000, got %s", got)
	}
}

// TestTotalDeductions checks that Chapter VI-A items count under the old
// regime only.
func TestTotalDeductions(t *testing.T) {
	deductions := Deductions{
		Basic80C:   rupees(150000),
		Medical80D: rupees(25000),
	}

	got := TotalDeductions(deductions, FY2025, RegimeNew)
	if !got.Equal(decimal.NewFromInt(75000)) {
		t.Fatalf("expected 75000, got %s", got)
	}

	got = TotalDeductions(deductions, FY2025, RegimeOld)
	if !got.Equal(decimal.NewFromInt(225000)) {
		t.Fatalf("expected 225000, got %s", got)
	}
}

// TestEvaluateNewRegimeSalaryOnly checks the FY 2025-2026 new-regime breakdown
// for a plain salary, where the rebate wipes the slab tax.
func TestEvaluateNewRegimeSalaryOnly(t *testing.T) {
	result := Evaluate(Input{
		Regime:        RegimeNew,
		FinancialYear: FY2025,
		Income:        IncomeDetails{Salary: rupees(1000000)},
	})

	if !result.TotalIncome.Equal(decimal.NewFromInt(1000000)) {
		t.Fatalf("expected total income 1000000, got %s", result.TotalIncome)
	}
	if !result.StandardDeduction.Equal(decimal.NewFromInt(75000)) {
		t.Fatalf("expected standard deduction 75000, got %s", result.StandardDeduction)
	}
	if !result.ChapterVIA.IsZero() {
		t.Fatalf("expected zero chapter VI-A, got %s", result.ChapterVIA)
	}
	if !result.TaxableIncome.Equal(decimal.NewFromInt(925000)) {
		t.Fatalf("expected taxable income 925000, got %s", result.TaxableIncome)
	}
	if !result.IncomeTax.IsZero() {
		t.Fatalf("expected rebate to zero the tax, got %s", result.IncomeTax)
	}
	if !result.HealthEducationCess.IsZero() {
		t.Fatalf("expected zero cess, got %s", result.HealthEducationCess)
	}
	if !result.Surcharge.IsZero() {
		t.Fatalf("expected zero surcharge, got %s", result.Surcharge)
	}
	if !result.TaxPayable.IsZero() {
		t.Fatalf("expected zero payable, got %s", result.TaxPayable)
	}
}

// TestEvaluateOldRegimeWithDeductions checks the old-regime breakdown with
// exempt allowances and an 80C deduction.
func TestEvaluateOldRegimeWithDeductions(t *testing.T) {
	result := Evaluate(Input{
		Regime:        RegimeOld,
		FinancialYear: FY2025,
		Income: IncomeDetails{
			Salary:           rupees(1000000),
			ExemptAllowances: rupees(100000),
		},
		Deductions: Deductions{Basic80C: rupees(150000)},
	})

	if !result.TotalIncome.Equal(decimal.NewFromInt(900000)) {
		t.Fatalf("expected total income 900000, got %s", result.TotalIncome)
	}
	if !result.ExemptAllowances.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected allowances 100000, got %s", result.ExemptAllowances)
	}
	if !result.StandardDeduction.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected standard deduction 50000, got %s", result.StandardDeduction)
	}
	if !result.ChapterVIA.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("expected chapter VI-A 150000, got %s", result.ChapterVIA)
	}
	if !result.TaxableIncome.Equal(decimal.NewFromInt(700000)) {
		t.Fatalf("expected taxable income 700000, got %s", result.TaxableIncome)
	}
	if !result.IncomeTax.Equal(decimal.NewFromInt(52500)) {
		t.Fatalf("expected income tax 52500, got %s", result.IncomeTax)
	}
	if !result.HealthEducationCess.Equal(decimal.NewFromInt(2100)) {
		t.Fatalf("expected cess 2100, got %s", result.HealthEducationCess)
	}
	if !result.TaxPayable.Equal(decimal.NewFromInt(54600)) {
		t.Fatalf("expected payable 54600, got %s", result.TaxPayable)
	}
}

// TestComputeRebateBoundaryFY2025 checks the rebate cliff at 12,00,000 for the
// FY 2025-2026 new regime.
func TestComputeRebateBoundaryFY2025(t *testing.T) {
	incomeTax, cess, payable := Compute(decimal.NewFromInt(1200000), FY2025, RegimeNew)
	if !incomeTax.IsZero() || !cess.IsZero() || !payable.IsZero() {
		t.Fatalf("expected zero tax at the boundary, got %s/%s/%s", incomeTax, cess, payable)
	}

	incomeTax, cess, payable = Compute(decimal.NewFromInt(1200001), FY2025, RegimeNew)
	if !incomeTax.Equal(decimal.NewFromFloat(90000.20)) {
		t.Fatalf("expected income tax 90000.2, got %s", incomeTax)
	}
	if !cess.Equal(decimal.NewFromInt(3600)) {
		t.Fatalf("expected cess 3600, got %s", cess)
	}
	if !payable.Equal(decimal.NewFromFloat(93600.20)) {
		t.Fatalf("expected payable 93600.2, got %s", payable)
	}
}

// TestComputeRebateBoundaryFY2024 checks the rebate cliff at 7,00,000 for the
// FY 2024-2025 new regime.
func TestComputeRebateBoundaryFY2024(t *testing.T) {
	incomeTax, _, _ := Compute(decimal.NewFromInt(700000), FY2024, RegimeNew)
	if !incomeTax.IsZero() {
		t.Fatalf("expected zero tax at the boundary, got %s", incomeTax)
	}

	incomeTax, cess, _ := Compute(decimal.NewFromInt(700001), FY2024, RegimeNew)
	if !incomeTax.Equal(decimal.NewFromFloat(25000.10)) {
		t.Fatalf("expected income tax 25000.1, got %s", incomeTax)
	}
	if !cess.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected cess 1000, got %s", cess)
	}
}

// TestComputeRebateBoundaryOldRegime checks the rebate cliff at 5,00,000 for
// the old regime.
func TestComputeRebateBoundaryOldRegime(t *testing.T) {
	incomeTax, _, _ := Compute(decimal.NewFromInt(500000), FY2025, RegimeOld)
	if !incomeTax.IsZero() {
		t.Fatalf("expected zero tax at the boundary, got %s", incomeTax)
	}

	incomeTax, _, _ = Compute(decimal.NewFromInt(500001), FY2025, RegimeOld)
	if !incomeTax.Equal(decimal.NewFromFloat(12500.20)) {
		t.Fatalf("expected income tax 12500.2, got %s", incomeTax)
	}
}

// TestComputeCessRoundsHalfUp checks half-up rounding of the cess.
func TestComputeCessRoundsHalfUp(t *testing.T) {
	// Slab tax 90012.5, cess before rounding 3600.50.
	_, cess, _ := Compute(decimal.NewFromFloat(1200062.5), FY2025, RegimeNew)
	if !cess.Equal(decimal.NewFromInt(3601)) {
		t.Fatalf("expected cess 3601, got %s", cess)
	}
}

// TestComputeZeroTaxable checks the zero-income edge.
func TestComputeZeroTaxable(t *testing.T) {
	incomeTax, cess, payable := Compute(decimal.Zero, FY2024, RegimeOld)
	if !incomeTax.IsZero() || !cess.IsZero() || !payable.IsZero() {
		t.Fatalf("expected all zero, got %s/%s/%s", incomeTax, cess, payable)
	}
}

// TestEvaluateClampsNegativeIncome checks that reported figures never go
// below zero even when allowances exceed salary.
func TestEvaluateClampsNegativeIncome(t *testing.T) {
	result := Evaluate(Input{
		Regime:        RegimeOld,
		FinancialYear: FY2025,
		Income:        IncomeDetails{ExemptAllowances: rupees(100000)},
	})

	if !result.TotalIncome.IsZero() {
		t.Fatalf("expected clamped total income, got %s", result.TotalIncome)
	}
	if !result.TaxableIncome.IsZero() {
		t.Fatalf("expected clamped taxable income, got %s", result.TaxableIncome)
	}
	if !result.TaxPayable.IsZero() {
		t.Fatalf("expected zero payable, got %s", result.TaxPayable)
	}
}

// TestEvaluateIdempotent checks that identical inputs produce identical
// results.
func TestEvaluateIdempotent(t *testing.T) {
	in := Input{
		Regime:        RegimeNew,
		FinancialYear: FY2024,
		AgeGroup:      AgeGroupBelow60,
		Income:        IncomeDetails{Salary: rupees(1500000), InterestIncome: rupees(20000)},
		Deductions:    Deductions{Basic80C: rupees(150000)},
	}

	first := Evaluate(in)
	second := Evaluate(in)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("expected identical encodings, got %s and %s", firstJSON, secondJSON)
	}
}

// TestFingerprint checks that the digest is stable for equal values and
// changes when any field changes.
func TestFingerprint(t *testing.T) {
	var first, second Input
	if err := json.Unmarshal([]byte(`{"regime":"new","financialYear":"FY 2025-2026","income":{"salary":"420.00"}}`), &first); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"regime":"new","financialYear":"FY 2025-2026","income":{"salary":420}}`), &second); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first.Fingerprint() != second.Fingerprint() {
		t.Fatal("expected equal fingerprints for equal values")
	}

	second.Regime = RegimeOld
	if first.Fingerprint() == second.Fingerprint() {
		t.Fatal("expected regime change to alter the fingerprint")
	}
}
