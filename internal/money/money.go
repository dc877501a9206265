// Package money represents monetary values as integer minor units (paise)
// so that repeated cart additions stay exact. Decimal strings appear only at
// the API boundary.
package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in minor units. 100 = 1.00.
type Amount int64

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrTooPrecise     = errors.New("amount has more than two decimal places")
)

// FromMinor wraps a raw minor-unit value.
func FromMinor(v int64) Amount {
	return Amount(v)
}

// Parse converts a decimal string like "1299.50" into an Amount.
// Negative values and sub-paise precision are rejected.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}

	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, ErrTooPrecise
	}

	return Amount(minor.IntPart()), nil
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return a + b
}

// Mul returns the amount multiplied by an item quantity.
func (a Amount) Mul(qty int) Amount {
	return a * Amount(qty)
}

// Minor returns the raw minor-unit value.
func (a Amount) Minor() int64 {
	return int64(a)
}

// Decimal returns the value in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String renders the amount with exactly two decimal places.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a decimal string, e.g. "1299.50".
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a decimal string or a bare JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}

	v, err := Parse(s)
	if err != nil {
		return err
	}

	*a = v
	return nil
}
