package tax

import "github.com/shopspring/decimal"

type Regime string

type FinancialYear string

type AgeGroup string

const (
	RegimeNew Regime = "new"
	RegimeOld Regime = "old"

	FY2025 FinancialYear = "FY 2025-2026"
	FY2024 FinancialYear = "FY 2024-2025"

	AgeGroupBelow60 AgeGroup = "0-60"
	AgeGroup60To80  AgeGroup = "60-80"
	AgeGroupAbove80 AgeGroup = "80+"
)

// Slab is a taxable-income bracket taxed at a fixed marginal rate.
// A zero UpTo means the slab has no upper bound; the unbounded slab is last.
type Slab struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

// Policy bundles the statutory parameters for one (regime, financial year) pair.
type Policy struct {
	Slabs             []Slab
	RebateLimit       decimal.Decimal
	StandardDeduction decimal.Decimal
	CessRate          decimal.Decimal
}

var (
	cessRate = decimal.NewFromFloat(0.04)

	newRegimeSlabsFY2025 = []Slab{
		{UpTo: decimal.NewFromInt(300000), Rate: decimal.Zero},
		{UpTo: decimal.NewFromInt(600000), Rate: decimal.NewFromFloat(0.05)},
		{UpTo: decimal.NewFromInt(900000), Rate: decimal.NewFromFloat(0.10)},
		{UpTo: decimal.NewFromInt(1200000), Rate: decimal.NewFromFloat(0.15)},
		{UpTo: decimal.NewFromInt(1500000), Rate: decimal.NewFromFloat(0.20)},
		{Rate: decimal.NewFromFloat(0.25)},
	}

	newRegimeSlabsFY2024 = []Slab{
		{UpTo: decimal.NewFromInt(300000), Rate: decimal.Zero},
		{UpTo: decimal.NewFromInt(600000), Rate: decimal.NewFromFloat(0.05)},
		{UpTo: decimal.NewFromInt(900000), Rate: decimal.NewFromFloat(0.10)},
		{UpTo: decimal.NewFromInt(1200000), Rate: decimal.NewFromFloat(0.15)},
		{UpTo: decimal.NewFromInt(1500000), Rate: decimal.NewFromFloat(0.20)},
		{Rate: decimal.NewFromFloat(0.30)},
	}

	// The same old-regime table is used for every financial year and age group.
	oldRegimeSlabs = []Slab{
		{UpTo: decimal.NewFromInt(250000), Rate: decimal.Zero},
		{UpTo: decimal.NewFromInt(500000), Rate: decimal.NewFromFloat(0.05)},
		{UpTo: decimal.NewFromInt(1000000), Rate: decimal.NewFromFloat(0.20)},
		{Rate: decimal.NewFromFloat(0.30)},
	}

	newRegimeRebateLimitFY2025 = decimal.NewFromInt(1200000)
	newRegimeRebateLimitFY2024 = decimal.NewFromInt(700000)
	oldRegimeRebateLimit       = decimal.NewFromInt(500000)
)

// PolicyFor returns the slab table, rebate limit, standard deduction and cess
// rate for the given regime and financial year. Unknown years fall back to the
// FY 2024-2025 parameters.
func PolicyFor(regime Regime, year FinancialYear) Policy {
	if regime == RegimeOld {
		return Policy{
			Slabs:             oldRegimeSlabs,
			RebateLimit:       oldRegimeRebateLimit,
			StandardDeduction: standardDeduction(regime, year),
			CessRate:          cessRate,
		}
	}

	if year == FY2025 {
		return Policy{
			Slabs:             newRegimeSlabsFY2025,
			RebateLimit:       newRegimeRebateLimitFY2025,
			StandardDeduction: standardDeduction(regime, year),
			CessRate:          cessRate,
		}
	}

	return Policy{
		Slabs:             newRegimeSlabsFY2024,
		RebateLimit:       newRegimeRebateLimitFY2024,
		StandardDeduction: standardDeduction(regime, year),
		CessRate:          cessRate,
	}
}

// Tax walks the slab table and returns the progressive tax before any rebate.
func (p Policy) Tax(taxableIncome decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero

	for _, slab := range p.Slabs {
		if !taxableIncome.GreaterThan(lower) {
			break
		}

		upper := taxableIncome
		if !slab.UpTo.IsZero() && upper.GreaterThan(slab.UpTo) {
			upper = slab.UpTo
		}

		tax = tax.Add(upper.Sub(lower).Mul(slab.Rate))
		lower = slab.UpTo
	}

	return tax
}

// The higher standard deduction applies to the new regime from FY 2025-2026
// only; the old regime stays at 50,000 for both years.
func standardDeduction(regime Regime, year FinancialYear) decimal.Decimal {
	if regime == RegimeNew && year == FY2025 {
		return decimal.NewFromInt(75000)
	}
	return decimal.NewFromInt(50000)
}

// Regimes lists the supported tax regimes.
func Regimes() []Regime {
	return []Regime{RegimeNew, RegimeOld}
}

// FinancialYears lists the supported financial years, newest first.
func FinancialYears() []FinancialYear {
	return []FinancialYear{FY2025, FY2024}
}

// AgeGroups lists the age brackets collected by the form. The selection is
// recorded with an estimate but does not change the computation.
func AgeGroups() []AgeGroup {
	return []AgeGroup{AgeGroupBelow60, AgeGroup60To80, AgeGroupAbove80}
}
