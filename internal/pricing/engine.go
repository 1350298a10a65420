package pricing

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty       int
	UnitPrice Money
	// Discount is the product-level promotion already computed for the line.
	Discount Money
}

// Gross is the undiscounted line price.
func (it Item) Gross() Money { return it.UnitPrice.Mul(it.Qty) }

// Net is the line price after its product-level discount.
func (it Item) Net() Money { return it.Gross().Sub(it.Discount) }

// Discounter computes an order-level discount from the post-promotion subtotal.
type Discounter func(subtotal Money) Money

// Summary aggregates computed pricing components.
type Summary struct {
	Gross           Money
	ProductDiscount Money
	Subtotal        Money
	CouponDiscount  Money
	Total           Money
}

// Compute calculates cart totals given the provided inputs. Product discounts
// are settled per line first; coupon, when non-nil, only ever sees the
// resulting subtotal.
func Compute(items []Item, coupon Discounter) Summary {
	var s Summary
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		gross := it.Gross()
		discount := it.Discount.Min(gross)
		s.Gross = s.Gross.Add(gross)
		s.ProductDiscount = s.ProductDiscount.Add(discount)
		s.Subtotal = s.Subtotal.Add(gross.Sub(discount))
	}
	if coupon != nil {
		s.CouponDiscount = coupon(s.Subtotal).Min(s.Subtotal)
	}
	s.Total = s.Subtotal.Sub(s.CouponDiscount)
	return s
}
