// Package money implements exact currency arithmetic on top of
// fixed-point decimals.
//
// The upstream API transmits all amounts as decimal strings, never as
// floating point numbers. Money preserves whatever precision it was
// parsed or computed with and serializes back with at least two fraction
// digits, so "1234.50" stays "1234.50" on the wire.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrInvalidDecimal is returned by Parse for malformed input.
var ErrInvalidDecimal = errors.New("invalid decimal")

// Money is an exact currency amount.
//
// The zero value is 0.00 and ready to use.
type Money struct {
	dec decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// New returns the Money for a decimal.
func New(d decimal.Decimal) Money {
	return Money{dec: d}
}

// FromInt returns the Money for a whole number of currency units.
func FromInt(i int64) Money {
	return Money{dec: decimal.NewFromInt(i)}
}

// Parse parses a decimal string.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}

	return Money{dec: d}, nil
}

// MustParse parses a decimal string and panics on malformed input.
// It is intended for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return m
}

// Decimal returns the underlying decimal.
func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

// Add returns m + n.
func (m Money) Add(n Money) Money {
	return Money{dec: m.dec.Add(n.dec)}
}

// Sub returns m - n.
func (m Money) Sub(n Money) Money {
	return Money{dec: m.dec.Sub(n.dec)}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{dec: m.dec.Neg()}
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	return Money{dec: m.dec.Abs()}
}

// Cmp compares m and n and returns -1, 0 or 1.
func (m Money) Cmp(n Money) int {
	return m.dec.Cmp(n.dec)
}

// Equal reports whether m and n represent the same amount.
func (m Money) Equal(n Money) bool {
	return m.dec.Equal(n.dec)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.dec.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.dec.IsPositive()
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

// GreaterThan reports whether m > n.
func (m Money) GreaterThan(n Money) bool {
	return m.dec.GreaterThan(n.dec)
}

// LessThan reports whether m < n.
func (m Money) LessThan(n Money) bool {
	return m.dec.LessThan(n.dec)
}

// ClampNonNegative returns max(0, m).
func (m Money) ClampNonNegative() Money {
	if m.dec.IsNegative() {
		return Zero
	}

	return m
}

// Float64 returns the nearest float64 for the amount.
//
// This is for display ratios only. A float is never used to derive an
// amount that is stored or sent back upstream.
func (m Money) Float64() float64 {
	return m.dec.InexactFloat64()
}

// String returns the canonical decimal string for the amount: at least
// two fraction digits, more when the amount carries more precision.
func (m Money) String() string {
	places := int32(2)
	if exp := m.dec.Exponent(); exp < -2 {
		places = -exp
	}

	return m.dec.StringFixed(places)
}

// MarshalJSON implements the json.Marshaler interface.
// Amounts cross the API boundary as decimal strings.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// It accepts a quoted decimal string and, defensively, a bare JSON
// number. A malformed amount decodes as zero with a surfaced warning
// instead of failing the payload: one bad field from upstream must not
// blank the whole budget.
func (m *Money) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*m = Zero
		return nil
	}

	parsed, err := Parse(value)
	if err != nil {
		log.Warn().Str("amount", value).Msg("unparsable amount from upstream, defaulting to zero")
		*m = Zero
		return nil
	}

	*m = parsed
	return nil
}

// Sum returns the sum of all amounts.
func Sum(amounts ...Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}

	return total
}
