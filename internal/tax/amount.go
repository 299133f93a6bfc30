package tax

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Amount is a non-negative rupee amount that tolerates messy form input.
// Blank, non-numeric and negative values all decode to zero, and strings may
// carry a currency symbol or digit grouping ("₹ 1,20,000").
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal as an Amount.
func NewAmount(value decimal.Decimal) Amount {
	return Amount{Decimal: value}
}

// ParseAmount interprets raw form input as a rupee amount. Anything that does
// not parse to a non-negative number comes back as zero.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "₹")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return decimal.Zero
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// UnmarshalJSON accepts a JSON number, a numeric string, null or an empty
// string. Invalid input is coerced to zero rather than rejected.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		a.Decimal = decimal.Zero
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = ParseAmount(s)
		return nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = value
	return nil
}

// MarshalJSON renders the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// ToPaise converts a rupee amount to whole paise for storage.
func ToPaise(value decimal.Decimal) int64 {
	return value.Round(2).Mul(hundred).IntPart()
}

// FromPaise converts stored paise back to a rupee amount.
func FromPaise(paise int64) decimal.Decimal {
	return decimal.New(paise, -2)
}
