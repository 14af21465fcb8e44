// Package money provides a fixed-precision rupee amount stored in integer paise.
// All arithmetic stays in integer minor units so splits and balances never drift
// the way float64 currency math does.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in paise (1/100 rupee). The zero value is ₹0.00.
type Money int64

var (
	ErrPrecision = fmt.Errorf("amount has more than two decimal places")

	hundred = decimal.NewFromInt(100)
)

// FromPaise builds a Money from a raw paise count.
func FromPaise(p int64) Money {
	return Money(p)
}

// FromRupees converts a decimal rupee amount to Money.
// Returns ErrPrecision if the amount is finer than one paisa.
func FromRupees(d decimal.Decimal) (Money, error) {
	paise := d.Shift(2)
	if !paise.IsInteger() {
		return 0, ErrPrecision
	}
	return Money(paise.IntPart()), nil
}

// Paise returns the raw minor-unit count.
func (m Money) Paise() int64 { return int64(m) }

// Rupees returns the amount as an exact decimal.
func (m Money) Rupees() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) Add(o Money) Money { return m + o }
func (m Money) Sub(o Money) Money { return m - o }
func (m Money) Neg() Money        { return -m }

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }

// Split divides the amount evenly into n shares, returning the base share and the
// paise left over (0 <= remainder < n). Callers distribute the remainder.
func (m Money) Split(n int) (share Money, remainder int64) {
	if n <= 0 {
		return 0, 0
	}
	return Money(int64(m) / int64(n)), int64(m) % int64(n)
}

// Percent returns pct% of the amount, floored to whole paise.
// Shift(-2) divides by 100 exactly, so flooring is the only rounding step.
func (m Money) Percent(pct decimal.Decimal) Money {
	return Money(decimal.NewFromInt(int64(m)).Mul(pct).Shift(-2).Floor().IntPart())
}

// String renders the amount the way the app displays it, e.g. "₹150.00" or
// "-₹0.50".
func (m Money) String() string {
	p := int64(m)
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, p/100, p%100)
}

// MarshalJSON emits the amount as a plain decimal number with two fractional
// digits (e.g. 150.00), matching what the browser client sends and expects.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Rupees().StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number (or numeric string) in rupees.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	parsed, err := FromRupees(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Sum adds up a slice of amounts.
func Sum(amounts []Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}
