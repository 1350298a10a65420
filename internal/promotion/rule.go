// Package promotion implements per-product discount rules.
package promotion

import (
	"fmt"

	"github.com/noah-isme/toko-till/internal/common"
	"github.com/noah-isme/toko-till/internal/pricing"
)

// ErrInvalidRule is returned when rule parameters are outside their allowed range.
var ErrInvalidRule = common.NewValidationError("INVALID_RULE", "invalid promotion rule")

// Kind identifies the rule variant.
type Kind int

const (
	KindNone Kind = iota
	KindGetOneFree
	KindPackage
	KindThreshold
)

// String returns a stable identifier for logs and payloads.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindGetOneFree:
		return "get_one_free"
	case KindPackage:
		return "package"
	case KindThreshold:
		return "threshold"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Rule is a closed set of discount variants. The zero value is None.
// Rules are values; construct them with None, GetOneFree, Package or Threshold.
type Rule struct {
	kind    Kind
	count   int
	percent int
}

// None grants no discount.
func None() Rule { return Rule{} }

// GetOneFree makes every n-th unit free.
func GetOneFree(n int) Rule { return Rule{kind: KindGetOneFree, count: n} }

// Package grants percent% off every complete group of n units.
func Package(n, percent int) Rule { return Rule{kind: KindPackage, count: n, percent: percent} }

// Threshold grants percent% off every unit past the n-th.
func Threshold(n, percent int) Rule { return Rule{kind: KindThreshold, count: n, percent: percent} }

// Kind reports the variant.
func (r Rule) Kind() Kind { return r.kind }

// Count is the n parameter of the rule; zero for None.
func (r Rule) Count() int { return r.count }

// Percent is the percentage parameter; zero for None and GetOneFree.
func (r Rule) Percent() int { return r.percent }

// Validate checks the rule parameters.
func (r Rule) Validate() error {
	switch r.kind {
	case KindNone:
		return nil
	case KindGetOneFree:
		if r.count < 2 {
			return fmt.Errorf("get one free every %d: %w", r.count, ErrInvalidRule)
		}
		return nil
	case KindPackage:
		if r.count < 2 {
			return fmt.Errorf("package of %d: %w", r.count, ErrInvalidRule)
		}
		return validPercent(r.percent)
	case KindThreshold:
		if r.count < 1 {
			return fmt.Errorf("threshold after %d: %w", r.count, ErrInvalidRule)
		}
		return validPercent(r.percent)
	default:
		return fmt.Errorf("unknown rule %s: %w", r.kind, ErrInvalidRule)
	}
}

// Discount computes the amount taken off qty units at unitPrice. It depends
// on nothing but its arguments.
func (r Rule) Discount(unitPrice pricing.Money, qty int, rounding pricing.Rounding) pricing.Money {
	if qty <= 0 {
		return pricing.Zero
	}
	switch r.kind {
	case KindNone:
		return pricing.Zero
	case KindGetOneFree:
		if r.count <= 0 {
			return pricing.Zero
		}
		return unitPrice.Mul(qty / r.count)
	case KindPackage:
		if r.count <= 0 {
			return pricing.Zero
		}
		grouped := (qty / r.count) * r.count
		return unitPrice.Mul(grouped).PercentOf(r.percent, rounding)
	case KindThreshold:
		if qty <= r.count {
			return pricing.Zero
		}
		return unitPrice.Mul(qty-r.count).PercentOf(r.percent, rounding)
	default:
		panic(fmt.Sprintf("promotion: unhandled rule kind %s", r.kind))
	}
}

// Label describes the rule for invoices. None has an empty label.
func (r Rule) Label() string {
	switch r.kind {
	case KindNone:
		return ""
	case KindGetOneFree:
		return fmt.Sprintf("buy %d, get 1 free", r.count-1)
	case KindPackage:
		return fmt.Sprintf("get %d%% off for every %d", r.percent, r.count)
	case KindThreshold:
		return fmt.Sprintf("%d%% off of every after the %s", r.percent, Ordinal(r.count))
	default:
		panic(fmt.Sprintf("promotion: unhandled rule kind %s", r.kind))
	}
}

// String implements fmt.Stringer.
func (r Rule) String() string {
	if r.kind == KindNone {
		return "none"
	}
	return r.Label()
}

// Ordinal renders n with its English suffix: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func validPercent(p int) error {
	if p <= 0 || p > 100 {
		return fmt.Errorf("percent %d outside (0, 100]: %w", p, ErrInvalidRule)
	}
	return nil
}
