package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/tax"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TaxEstimate struct {
	ID                 uuid.UUID         `json:"id"`
	UserID             uuid.UUID         `json:"user_id"`
	Label              *string           `json:"label,omitempty"`
	FinancialYear      tax.FinancialYear `json:"financial_year"`
	Regime             tax.Regime        `json:"regime"`
	AgeGroup           tax.AgeGroup      `json:"age_group,omitempty"`
	Income             json.RawMessage   `json:"income"`
	Deductions         json.RawMessage   `json:"deductions"`
	Result             json.RawMessage   `json:"result"`
	TotalIncomePaise   int64             `json:"total_income_paise"`
	TaxableIncomePaise int64             `json:"taxable_income_paise"`
	TaxPayablePaise    int64             `json:"tax_payable_paise"`
	CreatedAt          time.Time         `json:"created_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
