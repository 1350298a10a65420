package voucher

import (
	"fmt"
	"strings"

	"github.com/noah-isme/toko-till/internal/common"
	"github.com/noah-isme/toko-till/internal/pricing"
)

// ErrInvalidCoupon is returned when a coupon definition is malformed.
var ErrInvalidCoupon = common.NewValidationError("INVALID_COUPON", "invalid coupon")

// Kind distinguishes percent-off from fixed-amount coupons.
type Kind int

const (
	KindPercent Kind = iota + 1
	KindAmount
)

func (k Kind) String() string {
	switch k {
	case KindPercent:
		return "percent"
	case KindAmount:
		return "amount"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Coupon captures a registered order-level discount.
type Coupon struct {
	Code    string
	Kind    Kind
	Percent int
	Amount  pricing.Money
}

// Discount determines the amount taken off subtotal. The result never exceeds subtotal.
func (c Coupon) Discount(subtotal pricing.Money, rounding pricing.Rounding) pricing.Money {
	if subtotal.IsZero() {
		return pricing.Zero
	}
	var discount pricing.Money
	switch c.Kind {
	case KindPercent:
		discount = subtotal.PercentOf(c.Percent, rounding)
	case KindAmount:
		discount = c.Amount
	default:
		return pricing.Zero
	}
	return discount.Min(subtotal)
}

// Discounter adapts the coupon to the pricing engine.
func (c Coupon) Discounter(rounding pricing.Rounding) pricing.Discounter {
	return func(subtotal pricing.Money) pricing.Money {
		return c.Discount(subtotal, rounding)
	}
}

// Label describes the coupon on invoices, e.g. "20% off" or "10.00 off".
func (c Coupon) Label() string {
	if c.Kind == KindAmount {
		return c.Amount.String() + " off"
	}
	return fmt.Sprintf("%d%% off", c.Percent)
}

// Spec is the payload form of a coupon. Exactly one of Percent or Amount must be set.
type Spec struct {
	Percent *int    `json:"percent,omitempty"`
	Amount  *string `json:"amount,omitempty"`
}

// PercentOff builds a spec for percent% off the subtotal.
func PercentOff(percent int) Spec { return Spec{Percent: &percent} }

// AmountOff builds a spec for a fixed amount such as "10.00".
func AmountOff(amount string) Spec { return Spec{Amount: &amount} }

// Coupon validates the spec and returns the coupon registered under code.
func (s Spec) Coupon(code string) (Coupon, error) {
	if strings.TrimSpace(code) == "" {
		return Coupon{}, fmt.Errorf("empty coupon code: %w", ErrInvalidCoupon)
	}
	switch {
	case s.Percent != nil && s.Amount != nil:
		return Coupon{}, fmt.Errorf("coupon %s sets both percent and amount: %w", code, ErrInvalidCoupon)
	case s.Percent != nil:
		p := *s.Percent
		if p <= 0 || p > 100 {
			return Coupon{}, fmt.Errorf("coupon %s percent %d outside (0, 100]: %w", code, p, ErrInvalidCoupon)
		}
		return Coupon{Code: code, Kind: KindPercent, Percent: p}, nil
	case s.Amount != nil:
		amount, err := pricing.Parse(*s.Amount)
		if err != nil {
			return Coupon{}, fmt.Errorf("coupon %s amount: %v: %w", code, err, ErrInvalidCoupon)
		}
		if amount.IsZero() {
			return Coupon{}, fmt.Errorf("coupon %s amount must be positive: %w", code, ErrInvalidCoupon)
		}
		return Coupon{Code: code, Kind: KindAmount, Amount: amount}, nil
	default:
		return Coupon{}, fmt.Errorf("coupon %s sets neither percent nor amount: %w", code, ErrInvalidCoupon)
	}
}

// SpecFor is the inverse of Spec.Coupon.
func SpecFor(c Coupon) Spec {
	if c.Kind == KindAmount {
		return AmountOff(c.Amount.String())
	}
	return PercentOff(c.Percent)
}
