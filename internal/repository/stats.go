package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

type OverviewStats struct {
	TotalEstimates     int
	NewRegimeEstimates int
	OldRegimeEstimates int
	ZeroTaxEstimates   int
	TotalIncomePaise   int64
	TotalPayablePaise  int64
}

type YearBreakdown struct {
	FinancialYear       tax.FinancialYear
	Estimates           int
	AveragePayablePaise int64
	MaxPayablePaise     int64
}

// NewStatsRepository creates the statistics repository.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Overview returns aggregate figures over the user's saved estimates.
func (r *StatsRepository) Overview(ctx context.Context, userID uuid.UUID) (OverviewStats, error) {
	var stats OverviewStats

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) AS total_estimates,
		        COUNT(*) FILTER (WHERE regime = 'new') AS new_regime,
		        COUNT(*) FILTER (WHERE regime = 'old') AS old_regime,
		        COUNT(*) FILTER (WHERE tax_payable_paise = 0) AS zero_tax,
		        COALESCE(SUM(total_income_paise), 0) AS total_income_paise,
		        COALESCE(SUM(tax_payable_paise), 0) AS total_payable_paise
		 FROM tax_estimates
		 WHERE user_id = $1`,
		userID,
	).Scan(
		&stats.TotalEstimates,
		&stats.NewRegimeEstimates,
		&stats.OldRegimeEstimates,
		&stats.ZeroTaxEstimates,
		&stats.TotalIncomePaise,
		&stats.TotalPayablePaise,
	)
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// ByYear returns the user's estimates grouped by financial year, newest first.
func (r *StatsRepository) ByYear(ctx context.Context, userID uuid.UUID) ([]YearBreakdown, error) {
	rows, err := r.db.Query(ctx,
		`SELECT financial_year,
		        COUNT(*) AS estimates,
		        COALESCE(ROUND(AVG(tax_payable_paise)), 0)::bigint AS average_payable_paise,
		        COALESCE(MAX(tax_payable_paise), 0) AS max_payable_paise
		 FROM tax_estimates
		 WHERE user_id = $1
		 GROUP BY financial_year
		 ORDER BY financial_year DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breakdown := make([]YearBreakdown, 0)
	for rows.Next() {
		var row YearBreakdown
		err := rows.Scan(&row.FinancialYear, &row.Estimates, &row.AveragePayablePaise, &row.MaxPayablePaise)
		if err != nil {
			return nil, err
		}
		breakdown = append(breakdown, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return breakdown, nil
}
