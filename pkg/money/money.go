// Package money provides presentation-boundary helpers over decimal
// amounts. The simulation core keeps full precision throughout; rounding
// and currency formatting happen only here, at the edge.
package money

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision.
type Money struct {
	decimal.Decimal
}

// New creates a Money from a decimal amount.
func New(d decimal.Decimal) Money {
	return Money{d}
}

// FromFloat creates a Money from a float64.
func FromFloat(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// FromString creates a Money from a string.
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to cents using banker's rounding.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// RoundUnit rounds to whole currency units, the granularity charts use.
func (m Money) RoundUnit() Money {
	return Money{m.Decimal.Round(0)}
}

// Annual converts a monthly amount to annual.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly.
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Add adds another Money amount.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// IsNegative checks if the amount is negative.
func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

// Zero returns a zero Money amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount fixed to cents.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the amount with a currency symbol.
func (m Money) Format() string {
	if m.IsNegative() {
		return "-$" + m.Decimal.Abs().StringFixed(2)
	}
	return "$" + m.String()
}
