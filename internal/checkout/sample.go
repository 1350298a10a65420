package checkout

import (
	"context"

	"github.com/noah-isme/toko-till/internal/promotion"
	"github.com/noah-isme/toko-till/internal/voucher"
)

// SampleRequest is the breakfast basket: one product per promotion kind plus a
// percent coupon.
func SampleRequest() Request {
	getOneFree := 2
	qty := func(n int) *int { return &n }
	return Request{
		Products: []ProductInput{
			{Name: "Green Tea", Price: "2.79", Promotion: &promotion.Spec{GetOneFree: &getOneFree}},
			{Name: "Black Coffee", Price: "2.99", Promotion: &promotion.Spec{Package: &promotion.Tier{Count: 2, Percent: 20}}},
			{Name: "Milk", Price: "1.79", Promotion: &promotion.Spec{Threshold: &promotion.Tier{Count: 3, Percent: 30}}},
			{Name: "Cereal", Price: "2.49"},
		},
		Coupons: []CouponInput{{Code: "BREAKFAST", Spec: voucher.PercentOff(10)}},
		Items: []ItemInput{
			{Product: "Green Tea", Quantity: qty(8)},
			{Product: "Black Coffee", Quantity: qty(5)},
			{Product: "Milk", Quantity: qty(5)},
			{Product: "Cereal", Quantity: qty(3)},
		},
		Coupon: "BREAKFAST",
	}
}

// SelfCheck prices the sample basket. It backs the readiness probe.
func (s *Service) SelfCheck(ctx context.Context) error {
	probe := *s
	probe.Recorder = nil
	probe.Logger = nil
	_, err := probe.Quote(ctx, SampleRequest())
	return err
}
