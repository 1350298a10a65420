package catalog

import (
	"github.com/noah-isme/toko-till/internal/pricing"
	"github.com/noah-isme/toko-till/internal/promotion"
)

// Product is a registered catalog entry. Values are never mutated after registration.
type Product struct {
	Name      string
	UnitPrice pricing.Money
	Rule      promotion.Rule
}

// Discount applies the product rule to qty units.
func (p Product) Discount(qty int, rounding pricing.Rounding) pricing.Money {
	return p.Rule.Discount(p.UnitPrice, qty, rounding)
}
