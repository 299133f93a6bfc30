package repository

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

// TestBuildEstimateWhereEmpty checks that an empty filter adds no clause.
func TestBuildEstimateWhereEmpty(t *testing.T) {
	where, args := buildEstimateWhere(EstimateFilter{})

	if where != "" {
		t.Fatalf("expected empty where, got %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %d", len(args))
	}
}

// TestBuildEstimateWhere checks placeholder numbering with combined filters.
func TestBuildEstimateWhere(t *testing.T) {
	userID := uuid.New()
	regime := tax.RegimeOld
	year := tax.FY2024

	where, args := buildEstimateWhere(EstimateFilter{
		UserID:        &userID,
		Regime:        &regime,
		FinancialYear: &year,
	})

	if where != " WHERE user_id = $1 AND regime = $2 AND financial_year = $3" {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}
