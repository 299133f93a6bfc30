package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

type AdminUser struct {
	ID        uuid.UUID
	Email     string
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EstimateFilter struct {
	UserID        *uuid.UUID
	Regime        *tax.Regime
	FinancialYear *tax.FinancialYear
}

type EstimateRecord struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Label              *string
	FinancialYear      tax.FinancialYear
	Regime             tax.Regime
	AgeGroup           *string
	Income             []byte
	Deductions         []byte
	Result             []byte
	TotalIncomePaise   int64
	TaxableIncomePaise int64
	TaxPayablePaise    int64
	CreatedAt          time.Time
}

type DailyCount struct {
	Day   time.Time
	Count int
}

type UsageStats struct {
	Users          int
	Estimates      int
	NewRegime      int
	OldRegime      int
	EstimatesByDay []DailyCount
}

// NewAdminRepository creates the repository backing admin queries.
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// ListUsers returns a page of registered users.
func (r *AdminRepository) ListUsers(ctx context.Context, limit, offset int) ([]AdminUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, name, created_at, updated_at
		 FROM users
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]AdminUser, 0)
	for rows.Next() {
		var user AdminUser
		var name *string
		if err := rows.Scan(&user.ID, &user.Email, &name, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		user.Name = name
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// CountUsers returns the total number of registered users.
func (r *AdminRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListEstimates returns saved estimates across all users with filtering.
// Snapshots are heavy JSONB columns and are only selected when requested.
func (r *AdminRepository) ListEstimates(ctx context.Context, filter EstimateFilter, limit, offset int, includeSnapshots bool) ([]EstimateRecord, error) {
	where, args := buildEstimateWhere(filter)

	columns := "id, user_id, label, financial_year, regime, age_group, total_income_paise, taxable_income_paise, tax_payable_paise, created_at"
	if includeSnapshots {
		columns = "id, user_id, label, financial_year, regime, age_group, income, deductions, result, total_income_paise, taxable_income_paise, tax_payable_paise, created_at"
	}

	limitParam := len(args) + 1
	offsetParam := len(args) + 2
	query := fmt.Sprintf("SELECT %s FROM tax_estimates%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", columns, where, limitParam, offsetParam)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	estimates := make([]EstimateRecord, 0)
	for rows.Next() {
		var record EstimateRecord
		if includeSnapshots {
			if err := rows.Scan(
				&record.ID,
				&record.UserID,
				&record.Label,
				&record.FinancialYear,
				&record.Regime,
				&record.AgeGroup,
				&record.Income,
				&record.Deductions,
				&record.Result,
				&record.TotalIncomePaise,
				&record.TaxableIncomePaise,
				&record.TaxPayablePaise,
				&record.CreatedAt,
			); err != nil {
				return nil, err
			}
		} else {
			if err := rows.Scan(
				&record.ID,
				&record.UserID,
				&record.Label,
				&record.FinancialYear,
				&record.Regime,
				&record.AgeGroup,
				&record.TotalIncomePaise,
				&record.TaxableIncomePaise,
				&record.TaxPayablePaise,
				&record.CreatedAt,
			); err != nil {
				return nil, err
			}
		}
		estimates = append(estimates, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return estimates, nil
}

// CountEstimates returns the number of estimates matching the filter.
func (r *AdminRepository) CountEstimates(ctx context.Context, filter EstimateFilter) (int, error) {
	where, args := buildEstimateWhere(filter)

	query := fmt.Sprintf("SELECT COUNT(*) FROM tax_estimates%s", where)
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UsageStats returns service-wide aggregates over the last N days.
func (r *AdminRepository) UsageStats(ctx context.Context, days int) (UsageStats, error) {
	stats := UsageStats{}
	if days <= 0 {
		return stats, ErrInvalid
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.Users); err != nil {
		return stats, err
	}

	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE regime = 'new'),
		        COUNT(*) FILTER (WHERE regime = 'old')
		 FROM tax_estimates`,
	).Scan(&stats.Estimates, &stats.NewRegime, &stats.OldRegime); err != nil {
		return stats, err
	}

	start := time.Now().UTC().AddDate(0, 0, -days+1)
	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('day', created_at)::date AS day,
		        COUNT(*)
		 FROM tax_estimates
		 WHERE created_at >= $1
		 GROUP BY day
		 ORDER BY day DESC`,
		start,
	)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	stats.EstimatesByDay = make([]DailyCount, 0)
	for rows.Next() {
		var row DailyCount
		if err := rows.Scan(&row.Day, &row.Count); err != nil {
			return stats, err
		}
		stats.EstimatesByDay = append(stats.EstimatesByDay, row)
	}

	if err := rows.Err(); err != nil {
		return stats, err
	}

	return stats, nil
}

func buildEstimateWhere(filter EstimateFilter) (string, []interface{}) {
	clauses := make([]string, 0)
	args := make([]interface{}, 0)

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}

	if filter.Regime != nil {
		args = append(args, *filter.Regime)
		clauses = append(clauses, fmt.Sprintf("regime = $%d", len(args)))
	}

	if filter.FinancialYear != nil {
		args = append(args, *filter.FinancialYear)
		clauses = append(clauses, fmt.Sprintf("financial_year = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
