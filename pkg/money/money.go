// Package money provides a fixed-point monetary amount built on
// shopspring/decimal. All statutory withholding math in this module runs
// through Amount rather than float64 so that rounding is explicit and
// reproducible across platforms.
package money

import (
	"github.com/shopspring/decimal"
)

// Amount represents a monetary value with at least 4 decimal places of
// internal precision. Reported fields are rounded to 2dp only at the
// boundary (see Round2); intermediate aggregates are never pre-rounded.
type Amount struct {
	decimal.Decimal
}

// New creates an Amount from an int64 number of whole units.
func New(whole int64) Amount {
	return Amount{decimal.NewFromInt(whole)}
}

// NewFromFloat creates an Amount from a float64. Used for rate and ratio
// constants (e.g. 0.0595) in the calculators and in test tables; monetary
// request/response fields should prefer NewFromString.
func NewFromFloat(v float64) Amount {
	return Amount{decimal.NewFromFloat(v)}
}

// NewFromString parses a decimal string into an Amount.
func NewFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d}, nil
}

// FromDecimal wraps an existing decimal.Decimal as an Amount.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d}
}

// Zero is the additive identity.
var Zero = Amount{decimal.Zero}

// Round2 rounds half-away-from-zero to 2 decimal places for reporting.
// shopspring/decimal.Round already rounds half away from zero; this method
// exists so every reporting boundary in the engine names the rounding rule
// explicitly instead of relying on the library default silently.
func (a Amount) Round2() Amount {
	return Amount{a.Decimal.Round(2)}
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount { return Amount{a.Decimal.Add(b.Decimal)} }

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount { return Amount{a.Decimal.Sub(b.Decimal)} }

// Mul returns a * rate.
func (a Amount) Mul(rate Amount) Amount { return Amount{a.Decimal.Mul(rate.Decimal)} }

// Div returns a / d.
func (a Amount) Div(d Amount) Amount { return Amount{a.Decimal.Div(d.Decimal)} }

// Neg returns -a.
func (a Amount) Neg() Amount { return Amount{a.Decimal.Neg()} }

// IsZero reports whether a is exactly zero.
func (a Amount) IsZero() bool { return a.Decimal.IsZero() }

// IsNegative reports whether a is strictly less than zero.
func (a Amount) IsNegative() bool { return a.Decimal.IsNegative() }

// IsPositive reports whether a is strictly greater than zero.
func (a Amount) IsPositive() bool { return a.Decimal.IsPositive() }

// GreaterThan reports a > b.
func (a Amount) GreaterThan(b Amount) bool { return a.Decimal.GreaterThan(b.Decimal) }

// GreaterThanOrEqual reports a >= b.
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.Decimal.GreaterThanOrEqual(b.Decimal) }

// LessThan reports a < b.
func (a Amount) LessThan(b Amount) bool { return a.Decimal.LessThan(b.Decimal) }

// LessThanOrEqual reports a <= b.
func (a Amount) LessThanOrEqual(b Amount) bool { return a.Decimal.LessThanOrEqual(b.Decimal) }

// Equal reports a == b.
func (a Amount) Equal(b Amount) bool { return a.Decimal.Equal(b.Decimal) }

// Min returns the smaller of a and b.
func Min(a, b Amount) Amount {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Amount) Amount {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// MaxZero clamps a to zero if it is negative.
func MaxZero(a Amount) Amount {
	return Max(a, Zero)
}

// String renders the amount at its own stored precision. Rates and credit
// terms carry more than 2dp by design; intermediate aggregates are never
// pre-rounded. Callers that need a 2dp monetary string call Round2 first,
// after which this prints exactly 2 places.
func (a Amount) String() string {
	if exp := a.Decimal.Exponent(); exp < 0 {
		return a.Decimal.StringFixed(-exp)
	}
	return a.Decimal.String()
}

// MarshalJSON renders the amount as a JSON string at its own stored
// precision, since rate and ratio fields are exact decimals drawn straight
// from the rate table. Fields meant to be reported as money round with
// Round2 before this is called.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare JSON number: the
// rate-table files use bare numbers, while MarshalJSON writes strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	a.Decimal = d
	return nil
}
