package tax

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
)

// IncomeDetails holds the income heads collected by the estimation form.
type IncomeDetails struct {
	Salary               Amount `json:"salary"`
	ExemptAllowances     Amount `json:"exemptAllowances"`
	InterestIncome       Amount `json:"interestIncome"`
	HomeLoanSelfOccupied Amount `json:"homeLoanSelfOccupied"`
	RentalIncome         Amount `json:"rentalIncome"`
	HomeLoanLetOut       Amount `json:"homeLoanLetOut"`
	DigitalAssets        Amount `json:"digitalAssets"`
	OtherIncome          Amount `json:"otherIncome"`
}

// Deductions holds the Chapter VI-A items. They reduce taxable income under
// the old regime only.
type Deductions struct {
	Basic80C       Amount `json:"basic80C"`
	Deposits80TTA  Amount `json:"deposits80TTA"`
	Medical80D     Amount `json:"medical80D"`
	Donations80G   Amount `json:"donations80G"`
	Housing80EEA   Amount `json:"housing80EEA"`
	NPS80CCD       Amount `json:"nps80CCD"`
	NPS80CCD2      Amount `json:"nps80CCD2"`
	OtherDeduction Amount `json:"otherDeduction"`
}

// Input is one complete evaluation request.
type Input struct {
	Regime        Regime        `json:"regime"`
	FinancialYear FinancialYear `json:"financialYear"`
	AgeGroup      AgeGroup      `json:"ageGroup,omitempty"`
	Income        IncomeDetails `json:"income"`
	Deductions    Deductions    `json:"deductions"`
}

// Result is the computed breakdown for one input. Surcharge is carried for
// report completeness and is always zero.
type Result struct {
	TotalIncome         Amount `json:"totalIncome"`
	ExemptAllowances    Amount `json:"exemptAllowances"`
	StandardDeduction   Amount `json:"standardDeduction"`
	ChapterVIA          Amount `json:"chapterVIA"`
	TaxableIncome       Amount `json:"taxableIncome"`
	IncomeTax           Amount `json:"incomeTax"`
	HealthEducationCess Amount `json:"healthEducationCess"`
	Surcharge           Amount `json:"surcharge"`
	TaxPayable          Amount `json:"taxPayable"`
}

// TotalIncome aggregates the income heads. Exempt allowances reduce salary
// under the old regime only. The sum is not floored here, so it can go
// negative when allowances exceed salary; Evaluate clamps before reporting.
func TotalIncome(income IncomeDetails, regime Regime) decimal.Decimal {
	other := income.InterestIncome.Decimal.
		Add(income.HomeLoanSelfOccupied.Decimal).
		Add(income.RentalIncome.Decimal).
		Add(income.HomeLoanLetOut.Decimal).
		Add(income.DigitalAssets.Decimal).
		Add(income.OtherIncome.Decimal)

	salary := income.Salary.Decimal
	if regime == RegimeOld {
		salary = salary.Sub(income.ExemptAllowances.Decimal)
	}

	return salary.Add(other)
}

// ChapterVIA sums the itemized deductions, or returns zero under the new
// regime where they do not apply.
func ChapterVIA(deductions Deductions, regime Regime) decimal.Decimal {
	if regime != RegimeOld {
		return decimal.Zero
	}

	return deductions.Basic80C.Decimal.
		Add(deductions.Deposits80TTA.Decimal).
		Add(deductions.Medical80D.Decimal).
		Add(deductions.Donations80G.Decimal).
		Add(deductions.Housing80EEA.Decimal).
		Add(deductions.NPS80CCD.Decimal).
		Add(deductions.NPS80CCD2.Decimal).
		Add(deductions.OtherDeduction.Decimal)
}

// TotalDeductions returns the standard deduction plus whatever Chapter VI-A
// items the regime allows.
func TotalDeductions(deductions Deductions, year FinancialYear, regime Regime) decimal.Decimal {
	return PolicyFor(regime, year).StandardDeduction.Add(ChapterVIA(deductions, regime))
}

// Compute applies the slab table, the rebate and the 4% health and education
// cess to a taxable income the caller has already clamped to be non-negative.
func Compute(taxableIncome decimal.Decimal, year FinancialYear, regime Regime) (incomeTax, cess, taxPayable decimal.Decimal) {
	policy := PolicyFor(regime, year)

	incomeTax = policy.Tax(taxableIncome)
	if taxableIncome.LessThanOrEqual(policy.RebateLimit) {
		incomeTax = decimal.Zero
	}

	cess = incomeTax.Mul(policy.CessRate).Round(0)
	taxPayable = incomeTax.Add(cess)
	return incomeTax, cess, taxPayable
}

// Evaluate runs the full estimation for one input. It is a pure function:
// identical inputs always produce identical results.
func Evaluate(in Input) Result {
	policy := PolicyFor(in.Regime, in.FinancialYear)

	totalIncome := TotalIncome(in.Income, in.Regime)
	chapterVIA := ChapterVIA(in.Deductions, in.Regime)

	taxableIncome := totalIncome.Sub(policy.StandardDeduction).Sub(chapterVIA)
	if taxableIncome.IsNegative() {
		taxableIncome = decimal.Zero
	}

	incomeTax, cess, taxPayable := Compute(taxableIncome, in.FinancialYear, in.Regime)

	exempt := decimal.Zero
	if in.Regime == RegimeOld {
		exempt = in.Income.ExemptAllowances.Decimal
	}

	if totalIncome.IsNegative() {
		totalIncome = decimal.Zero
	}

	return Result{
		TotalIncome:         NewAmount(totalIncome),
		ExemptAllowances:    NewAmount(exempt),
		StandardDeduction:   NewAmount(policy.StandardDeduction),
		ChapterVIA:          NewAmount(chapterVIA),
		TaxableIncome:       NewAmount(taxableIncome),
		IncomeTax:           NewAmount(incomeTax),
		HealthEducationCess: NewAmount(cess),
		Surcharge:           NewAmount(decimal.Zero),
		TaxPayable:          NewAmount(taxPayable),
	}
}

// Fingerprint returns a stable digest of the input, used as the cache key for
// repeated evaluations of the same figures.
func (in Input) Fingerprint() string {
	fields := []string{
		string(in.Regime),
		string(in.FinancialYear),
		string(in.AgeGroup),
		in.Income.Salary.String(),
		in.Income.ExemptAllowances.String(),
		in.Income.InterestIncome.String(),
		in.Income.HomeLoanSelfOccupied.String(),
		in.Income.RentalIncome.String(),
		in.Income.HomeLoanLetOut.String(),
		in.Income.DigitalAssets.String(),
		in.Income.OtherIncome.String(),
		in.Deductions.Basic80C.String(),
		in.Deductions.Deposits80TTA.String(),
		in.Deductions.Medical80D.String(),
		in.Deductions.Donations80G.String(),
		in.Deductions.Housing80EEA.String(),
		in.Deductions.NPS80CCD.String(),
		in.Deductions.NPS80CCD2.String(),
		in.Deductions.OtherDeduction.String(),
	}

	sum := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return hex.EncodeToString(sum[:])
}
