package catalog

import (
	"github.com/noah-isme/toko-till/internal/invoice"
	"github.com/noah-isme/toko-till/internal/pricing"
	"github.com/noah-isme/toko-till/internal/voucher"
)

// PricedLine is a cart line with its pricing breakdown.
type PricedLine struct {
	Product   string        `json:"product"`
	Quantity  int           `json:"quantity"`
	UnitPrice pricing.Money `json:"unitPrice"`
	Gross     pricing.Money `json:"gross"`
	Discount  pricing.Money `json:"discount"`
	Promotion string        `json:"promotion,omitempty"`
	Net       pricing.Money `json:"net"`
}

// Summary is the full pricing breakdown of a cart.
type Summary struct {
	Lines           []PricedLine  `json:"lines"`
	Gross           pricing.Money `json:"gross"`
	ProductDiscount pricing.Money `json:"productDiscount"`
	Subtotal        pricing.Money `json:"subtotal"`
	Coupon          string        `json:"coupon,omitempty"`
	CouponLabel     string        `json:"couponLabel,omitempty"`
	CouponDiscount  pricing.Money `json:"couponDiscount"`
	Total           pricing.Money `json:"total"`
}

// Summary prices the cart: product rules per line first, then the coupon on
// the discounted subtotal. It does not mutate the cart.
func (c *Cart) Summary() Summary {
	rounding := c.catalog.rounding
	items := make([]pricing.Item, 0, len(c.lines))
	lines := make([]PricedLine, 0, len(c.lines))
	for _, l := range c.lines {
		// lines only hold registered names
		p := c.catalog.products[l.Product]
		item := pricing.Item{Qty: l.Quantity, UnitPrice: p.UnitPrice, Discount: p.Discount(l.Quantity, rounding)}
		items = append(items, item)
		lines = append(lines, PricedLine{
			Product:   l.Product,
			Quantity:  l.Quantity,
			UnitPrice: p.UnitPrice,
			Gross:     item.Gross(),
			Discount:  item.Gross().Sub(item.Net()),
			Promotion: p.Rule.Label(),
			Net:       item.Net(),
		})
	}

	var (
		discounter pricing.Discounter
		coupon     voucher.Coupon
	)
	if c.coupon != "" {
		coupon = c.catalog.coupons[c.coupon]
		discounter = coupon.Discounter(rounding)
	}
	s := pricing.Compute(items, discounter)
	out := Summary{
		Lines:           lines,
		Gross:           s.Gross,
		ProductDiscount: s.ProductDiscount,
		Subtotal:        s.Subtotal,
		CouponDiscount:  s.CouponDiscount,
		Total:           s.Total,
	}
	if c.coupon != "" {
		out.Coupon = coupon.Code
		out.CouponLabel = coupon.Label()
	}
	return out
}

// Total is the amount payable.
func (c *Cart) Total() pricing.Money {
	return c.Summary().Total
}

// Document builds the invoice model for the cart.
func (c *Cart) Document() invoice.Document {
	s := c.Summary()
	doc := invoice.Document{Lines: make([]invoice.Line, 0, len(s.Lines)), Total: s.Total}
	for _, l := range s.Lines {
		doc.Lines = append(doc.Lines, invoice.Line{
			Name:          l.Product,
			Quantity:      l.Quantity,
			Price:         l.Gross,
			Discount:      l.Discount,
			DiscountLabel: l.Promotion,
		})
	}
	if s.Coupon != "" {
		doc.Coupon = &invoice.CouponLine{Code: s.Coupon, Description: s.CouponLabel, Discount: s.CouponDiscount}
	}
	return doc
}

// Invoice renders the cart as a text table.
func (c *Cart) Invoice() string {
	out := invoice.Render(c.Document())
	c.catalog.recorder.InvoiceRendered()
	c.logger.Debug().Int("lines", len(c.lines)).Msg("invoice rendered")
	return out
}
