package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-till/internal/common"
)

// Scale is the number of fractional digits carried by Money.
const Scale = 2

// ErrInvalidAmount is returned when a literal cannot be read as a non-negative amount.
var ErrInvalidAmount = common.NewValidationError("INVALID_AMOUNT", "invalid amount")

var (
	hundred  = decimal.NewFromInt(100)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

// Money represents a non-negative monetary value stored in minor units.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// FromMinor wraps a count of minor units.
func FromMinor(units int64) Money {
	if units < 0 {
		return Zero
	}
	return Money(units)
}

// Parse reads a decimal literal such as "1.99" or "1000.0".
func Parse(value string) (Money, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Zero, fmt.Errorf("empty literal: %w", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Zero, fmt.Errorf("parse %q: %w", trimmed, ErrInvalidAmount)
	}
	return FromDecimal(d)
}

// MustParse is like Parse but panics on error. Intended for literals in tests and fixtures.
func MustParse(value string) Money {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal converts an exact decimal into Money. Sub-cent precision is rejected.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Zero, fmt.Errorf("negative amount %s: %w", d.String(), ErrInvalidAmount)
	}
	if !d.Equal(d.Truncate(Scale)) {
		return Zero, fmt.Errorf("amount %s has more than %d fractional digits: %w", d.String(), Scale, ErrInvalidAmount)
	}
	minor := d.Shift(Scale)
	if minor.GreaterThan(maxMinor) {
		return Zero, fmt.Errorf("amount %s out of range: %w", d.String(), ErrInvalidAmount)
	}
	return Money(minor.IntPart()), nil
}

// Minor returns the amount in minor units.
func (m Money) Minor() int64 { return int64(m) }

// Decimal returns the exact decimal representation.
func (m Money) Decimal() decimal.Decimal { return decimal.New(int64(m), -Scale) }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m == 0 }

// Add returns m + o.
func (m Money) Add(o Money) Money { return m + o }

// Sub returns m - o clamped at zero.
func (m Money) Sub(o Money) Money {
	if o >= m {
		return Zero
	}
	return m - o
}

// Mul scales the amount by a non-negative integer quantity.
func (m Money) Mul(qty int) Money {
	if qty <= 0 {
		return Zero
	}
	return m * Money(qty)
}

// Min returns the smaller of m and o.
func (m Money) Min(o Money) Money {
	if o < m {
		return o
	}
	return m
}

// PercentOf returns percent% of m, rounded to a whole minor unit using r.
func (m Money) PercentOf(percent int, r Rounding) Money {
	if percent <= 0 || m == 0 {
		return Zero
	}
	scaled := m.Decimal().Mul(decimal.NewFromInt(int64(percent))).Div(hundred)
	out, err := FromDecimal(r.apply(scaled))
	if err != nil {
		// unreachable for non-negative inputs rounded to Scale
		return Zero
	}
	return out
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string { return m.Decimal().StringFixed(Scale) }

// MarshalJSON encodes the amount as a decimal string, e.g. "1.99".
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a quoted decimal string or a bare JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(s)
	}
	parsed, err := Parse(string(raw))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
