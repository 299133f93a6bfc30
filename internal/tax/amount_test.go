package tax

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

// TestParseAmount checks coercion of raw form input.
func TestParseAmount(t *testing.T) {
	if got := ParseAmount("1,20,000"); !got.Equal(decimal.NewFromInt(120000)) {
		t.Fatalf("expected 120000, got %s", got)
	}

	if got := ParseAmount("₹ 2 500"); !got.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected 2500, got %s", got)
	}

	if got := ParseAmount("1234.56"); !got.Equal(decimal.NewFromFloat(1234.56)) {
		t.Fatalf("expected 1234.56, got %s", got)
	}

	if got := ParseAmount(""); !got.IsZero() {
		t.Fatalf("expected zero for blank input, got %s", got)
	}

	if got := ParseAmount("abc"); !got.IsZero() {
		t.Fatalf("expected zero for non-numeric input, got %s", got)
	}

	if got := ParseAmount("-500"); !got.IsZero() {
		t.Fatalf("expected zero for negative input, got %s", got)
	}
}

// TestAmountUnmarshalJSON checks that both numbers and strings decode, with
// invalid values coerced to zero.
func TestAmountUnmarshalJSON(t *testing.T) {
	var payload struct {
		Value Amount `json:"value"`
	}

	if err := json.Unmarshal([]byte(`{"value": 42000}`), &payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !payload.Value.Equal(decimal.NewFromInt(42000)) {
		t.Fatalf("expected 42000, got %s", payload.Value)
	}

	if err := json.Unmarshal([]byte(`{"value": "1,00,000"}`), &payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !payload.Value.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected 100000, got %s", payload.Value)
	}

	if err := json.Unmarshal([]byte(`{"value": ""}`), &payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !payload.Value.IsZero() {
		t.Fatalf("expected zero for blank string, got %s", payload.Value)
	}

	if err := json.Unmarshal([]byte(`{"value": null}`), &payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !payload.Value.IsZero() {
		t.Fatalf("expected zero for null, got %s", payload.Value)
	}

	if err := json.Unmarshal([]byte(`{"value": -12}`), &payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !payload.Value.IsZero() {
		t.Fatalf("expected zero for negative number, got %s", payload.Value)
	}

	if err := json.Unmarshal([]byte(`{"value": "n/a"}`), &payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !payload.Value.IsZero() {
		t.Fatalf("expected zero for garbage string, got %s", payload.Value)
	}
}

// TestAmountMarshalJSON checks that amounts render as bare numbers.
func TestAmountMarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewAmount(decimal.NewFromInt(48750)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(data) != "48750" {
		t.Fatalf("expected 48750, got %s", data)
	}

	data, err = json.Marshal(Amount{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(data) != "0" {
		t.Fatalf("expected 0, got %s", data)
	}
}

// TestPaiseRoundTrip checks the paise storage conversion.
func TestPaiseRoundTrip(t *testing.T) {
	if got := ToPaise(decimal.NewFromFloat(54600.00)); got != 5460000 {
		t.Fatalf("expected 5460000, got %d", got)
	}

	if got := ToPaise(decimal.NewFromFloat(90000.20)); got != 9000020 {
		t.Fatalf("expected 9000020, got %d", got)
	}

	if got := FromPaise(9000020); !got.Equal(decimal.NewFromFloat(90000.20)) {
		t.Fatalf("expected 90000.2, got %s", got)
	}

	if got := FromPaise(0); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}

// TestIncomeDetailsFromForm checks decoding a full income payload with mixed
// value styles.
func TestIncomeDetailsFromForm(t *testing.T) {
	body := []byte(`{
		"salary": "10,00,000",
		"exemptAllowances": 100000,
		"interestIncome": "",
		"rentalIncome": "₹ 24,000",
		"digitalAssets": null
	}`)

	var income IncomeDetails
	if err := json.Unmarshal(body, &income); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !income.Salary.Equal(decimal.NewFromInt(1000000)) {
		t.Fatalf("expected salary 1000000, got %s", income.Salary)
	}
	if !income.ExemptAllowances.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected allowances 100000, got %s", income.ExemptAllowances)
	}
	if !income.InterestIncome.IsZero() {
		t.Fatalf("expected zero interest, got %s", income.InterestIncome)
	}
	if !income.RentalIncome.Equal(decimal.NewFromInt(24000)) {
		t.Fatalf("expected rental 24000, got %s", income.RentalIncome)
	}
	if !income.DigitalAssets.IsZero() {
		t.Fatalf("expected zero digital assets, got %s", income.DigitalAssets)
	}
}
