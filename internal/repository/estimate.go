package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/models"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

type EstimateRepository struct {
	db *pgxpool.Pool
}

// NewEstimateRepository creates the saved-estimate repository.
func NewEstimateRepository(db *pgxpool.Pool) *EstimateRepository {
	return &EstimateRepository{db: db}
}

// Create stores an estimate together with its input and result snapshots.
func (r *EstimateRepository) Create(ctx context.Context, estimate models.TaxEstimate) (models.TaxEstimate, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tax_estimates
		 (user_id, label, financial_year, regime, age_group, income, deductions, result,
		  total_income_paise, taxable_income_paise, tax_payable_paise)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6::jsonb, $7::jsonb, $8::jsonb, $9, $10, $11)
		 RETURNING id, created_at`,
		estimate.UserID,
		estimate.Label,
		estimate.FinancialYear,
		estimate.Regime,
		string(estimate.AgeGroup),
		string(estimate.Income),
		string(estimate.Deductions),
		string(estimate.Result),
		estimate.TotalIncomePaise,
		estimate.TaxableIncomePaise,
		estimate.TaxPayablePaise,
	).Scan(&estimate.ID, &estimate.CreatedAt)
	if err != nil {
		return estimate, err
	}

	return estimate, nil
}

// GetByID returns one of the user's estimates by id.
func (r *EstimateRepository) GetByID(ctx context.Context, userID, estimateID uuid.UUID) (models.TaxEstimate, error) {
	var estimate models.TaxEstimate
	var label *string
	var ageGroup *string
	var income, deductions, result []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, label, financial_year, regime, age_group, income, deductions, result,
		        total_income_paise, taxable_income_paise, tax_payable_paise, created_at
		 FROM tax_estimates
		 WHERE id = $1 AND user_id = $2`,
		estimateID, userID,
	).Scan(
		&estimate.ID,
		&estimate.UserID,
		&label,
		&estimate.FinancialYear,
		&estimate.Regime,
		&ageGroup,
		&income,
		&deductions,
		&result,
		&estimate.TotalIncomePaise,
		&estimate.TaxableIncomePaise,
		&estimate.TaxPayablePaise,
		&estimate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return estimate, ErrNotFound
		}
		return estimate, err
	}

	estimate.Label = label
	if ageGroup != nil {
		estimate.AgeGroup = tax.AgeGroup(*ageGroup)
	}
	estimate.Income = income
	estimate.Deductions = deductions
	estimate.Result = result
	return estimate, nil
}

// ListByUser returns the user's estimates, newest first.
func (r *EstimateRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.TaxEstimate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, label, financial_year, regime, age_group, income, deductions, result,
		        total_income_paise, taxable_income_paise, tax_payable_paise, created_at
		 FROM tax_estimates
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	estimates := make([]models.TaxEstimate, 0)
	for rows.Next() {
		var estimate models.TaxEstimate
		var label *string
		var ageGroup *string
		var income, deductions, result []byte

		err := rows.Scan(
			&estimate.ID,
			&estimate.UserID,
			&label,
			&estimate.FinancialYear,
			&estimate.Regime,
			&ageGroup,
			&income,
			&deductions,
			&result,
			&estimate.TotalIncomePaise,
			&estimate.TaxableIncomePaise,
			&estimate.TaxPayablePaise,
			&estimate.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		estimate.Label = label
		if ageGroup != nil {
			estimate.AgeGroup = tax.AgeGroup(*ageGroup)
		}
		estimate.Income = income
		estimate.Deductions = deductions
		estimate.Result = result
		estimates = append(estimates, estimate)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return estimates, nil
}

// CountByUser returns how many estimates the user has saved.
func (r *EstimateRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tax_estimates WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes one of the user's estimates.
func (r *EstimateRepository) Delete(ctx context.Context, userID, estimateID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM tax_estimates
		 WHERE id = $1 AND user_id = $2`,
		estimateID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
