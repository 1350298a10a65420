package voucher

import (
	"errors"
	"testing"

	"github.com/noah-isme/toko-till/internal/pricing"
)

func TestDiscountPercent(t *testing.T) {
	c, err := PercentOff(20).Coupon("20OFF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	discount := c.Discount(pricing.MustParse("7.74"), pricing.RoundHalfUp)
	if discount != pricing.MustParse("1.55") {
		t.Fatalf("expected 1.55 discount, got %s", discount)
	}
	discount = c.Discount(pricing.MustParse("7.74"), pricing.RoundDown)
	if discount != pricing.MustParse("1.54") {
		t.Fatalf("expected 1.54 truncated discount, got %s", discount)
	}
	if c.Label() != "20% off" {
		t.Fatalf("unexpected label %q", c.Label())
	}
}

func TestDiscountAmountClampsToSubtotal(t *testing.T) {
	c, err := AmountOff("10.00").Coupon("TEA-TIME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Discount(pricing.MustParse("5.00"), pricing.RoundHalfUp); got != pricing.MustParse("5.00") {
		t.Fatalf("expected discount clamped to 5.00, got %s", got)
	}
	if got := c.Discount(pricing.MustParse("25.00"), pricing.RoundHalfUp); got != pricing.MustParse("10.00") {
		t.Fatalf("expected 10.00, got %s", got)
	}
	if got := c.Discount(pricing.Zero, pricing.RoundHalfUp); !got.IsZero() {
		t.Fatalf("expected zero discount on empty subtotal, got %s", got)
	}
	if c.Label() != "10.00 off" {
		t.Fatalf("unexpected label %q", c.Label())
	}
}

func TestDiscounterFeedsEngine(t *testing.T) {
	c, _ := PercentOff(10).Coupon("BREAKFAST")
	items := []pricing.Item{{Qty: 1, UnitPrice: pricing.MustParse("39.07")}}
	s := pricing.Compute(items, c.Discounter(pricing.RoundHalfUp))
	if s.CouponDiscount != pricing.MustParse("3.91") || s.Total != pricing.MustParse("35.16") {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestSpecRejectsMalformed(t *testing.T) {
	zero, over := 0, 101
	bad := map[string]Spec{
		"empty":       {},
		"both":        {Percent: intPtr(10), Amount: strPtr("1.00")},
		"zero":        {Percent: &zero},
		"over":        {Percent: &over},
		"zero amount": AmountOff("0.00"),
		"negative":    AmountOff("-3.00"),
		"garbage":     AmountOff("ten"),
	}
	for name, spec := range bad {
		if _, err := spec.Coupon("X"); !errors.Is(err, ErrInvalidCoupon) {
			t.Fatalf("%s: expected ErrInvalidCoupon, got %v", name, err)
		}
	}
	if _, err := PercentOff(10).Coupon("  "); !errors.Is(err, ErrInvalidCoupon) {
		t.Fatalf("expected blank code to be rejected, got %v", err)
	}
}

func TestSpecForRoundTrip(t *testing.T) {
	c, _ := AmountOff("2.50").Coupon("SMALL")
	back, err := SpecFor(c).Coupon("SMALL")
	if err != nil || back != c {
		t.Fatalf("round trip mismatch: %+v vs %+v (%v)", back, c, err)
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
