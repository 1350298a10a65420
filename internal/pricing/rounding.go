package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rounding selects how fractional minor units produced by percentages are resolved.
type Rounding int

const (
	// RoundHalfUp rounds to the nearest minor unit, halves away from zero.
	RoundHalfUp Rounding = iota
	// RoundDown truncates toward zero.
	RoundDown
)

// ParseRounding maps configuration values onto a Rounding mode.
func ParseRounding(value string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "half_up", "half-up", "nearest":
		return RoundHalfUp, nil
	case "down", "truncate", "floor":
		return RoundDown, nil
	default:
		return RoundHalfUp, fmt.Errorf("unknown rounding mode %q", value)
	}
}

// String returns the canonical configuration name.
func (r Rounding) String() string {
	switch r {
	case RoundDown:
		return "down"
	default:
		return "half_up"
	}
}

func (r Rounding) apply(d decimal.Decimal) decimal.Decimal {
	if r == RoundDown {
		return d.Truncate(Scale)
	}
	return d.Round(Scale)
}
