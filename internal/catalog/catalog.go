// Package catalog holds product and coupon registration together with the
// carts priced against them.
package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-till/internal/pricing"
	"github.com/noah-isme/toko-till/internal/promotion"
	"github.com/noah-isme/toko-till/internal/voucher"
)

// Recorder receives outcome notifications for metrics. err is nil on success.
type Recorder interface {
	Registration(kind string, err error)
	CartOperation(op string, err error)
	InvoiceRendered()
}

type nopRecorder struct{}

func (nopRecorder) Registration(string, error)  {}
func (nopRecorder) CartOperation(string, error) {}
func (nopRecorder) InvoiceRendered()            {}

// Limits bounds what can be registered and carted.
type Limits struct {
	MaxNameLength   int
	MaxUnitPrice    pricing.Money
	MaxLineQuantity int
}

// DefaultLimits returns the standard till limits: 40 character names,
// prices up to 999.99 and at most 99 units per line.
func DefaultLimits() Limits {
	return Limits{
		MaxNameLength:   40,
		MaxUnitPrice:    pricing.FromMinor(99999),
		MaxLineQuantity: 99,
	}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxNameLength <= 0 {
		l.MaxNameLength = def.MaxNameLength
	}
	if l.MaxUnitPrice <= 0 {
		l.MaxUnitPrice = def.MaxUnitPrice
	}
	if l.MaxLineQuantity <= 0 {
		l.MaxLineQuantity = def.MaxLineQuantity
	}
	return l
}

// Config groups Catalog dependencies. The zero value is usable.
type Config struct {
	Limits   Limits
	Rounding pricing.Rounding
	Logger   *zerolog.Logger
	Recorder Recorder
}

// Catalog is the registry of products and coupons. It is not safe for
// concurrent use; each unit of work owns its own Catalog.
type Catalog struct {
	limits   Limits
	rounding pricing.Rounding
	logger   zerolog.Logger
	recorder Recorder

	products     map[string]Product
	productOrder []string
	coupons      map[string]voucher.Coupon
	couponOrder  []string
}

// New constructs an empty catalog.
func New(cfg Config) *Catalog {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Catalog{
		limits:   cfg.Limits.withDefaults(),
		rounding: cfg.Rounding,
		logger:   logger,
		recorder: recorder,
		products: make(map[string]Product),
		coupons:  make(map[string]voucher.Coupon),
	}
}

// Limits reports the effective limits.
func (c *Catalog) Limits() Limits { return c.limits }

// Rounding reports the rounding mode used for percentage discounts.
func (c *Catalog) Rounding() pricing.Rounding { return c.rounding }

// Register adds a product priced at the decimal literal price.
func (c *Catalog) Register(name, price string, rule promotion.Rule) (err error) {
	defer func() { c.recorder.Registration("product", err) }()

	if _, exists := c.products[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateProduct)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("register: empty name: %w", ErrInvalidName)
	}
	if n := utf8.RuneCountInString(name); n > c.limits.MaxNameLength {
		return fmt.Errorf("register %q: name has %d characters, limit is %d: %w", name, n, c.limits.MaxNameLength, ErrInvalidName)
	}
	unit, perr := pricing.Parse(price)
	if perr != nil {
		return fmt.Errorf("register %q: price %q: %v: %w", name, price, perr, ErrInvalidPrice)
	}
	if unit.IsZero() || unit > c.limits.MaxUnitPrice {
		return fmt.Errorf("register %q: price %s outside (0, %s]: %w", name, unit, c.limits.MaxUnitPrice, ErrInvalidPrice)
	}
	if verr := rule.Validate(); verr != nil {
		return fmt.Errorf("register %q: %w", name, verr)
	}

	c.products[name] = Product{Name: name, UnitPrice: unit, Rule: rule}
	c.productOrder = append(c.productOrder, name)
	c.logger.Debug().
		Str("product", name).
		Str("price", unit.String()).
		Str("rule", rule.Kind().String()).
		Msg("product registered")
	return nil
}

// RegisterCoupon adds a coupon under code.
func (c *Catalog) RegisterCoupon(code string, spec voucher.Spec) (err error) {
	defer func() { c.recorder.Registration("coupon", err) }()

	if _, exists := c.coupons[code]; exists {
		return fmt.Errorf("register coupon %q: %w", code, ErrDuplicateCoupon)
	}
	coupon, verr := spec.Coupon(code)
	if verr != nil {
		return fmt.Errorf("register coupon %q: %w", code, verr)
	}
	c.coupons[code] = coupon
	c.couponOrder = append(c.couponOrder, code)
	c.logger.Debug().
		Str("coupon", code).
		Str("discount", coupon.Label()).
		Msg("coupon registered")
	return nil
}

// FindProduct looks up a product by exact name.
func (c *Catalog) FindProduct(name string) (Product, error) {
	p, ok := c.products[name]
	if !ok {
		return Product{}, fmt.Errorf("product %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// FindCoupon looks up a coupon by exact code.
func (c *Catalog) FindCoupon(code string) (voucher.Coupon, error) {
	cp, ok := c.coupons[code]
	if !ok {
		return voucher.Coupon{}, fmt.Errorf("coupon %q: %w", code, ErrNotFound)
	}
	return cp, nil
}

// Products returns the registered products in registration order.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.productOrder))
	for _, name := range c.productOrder {
		out = append(out, c.products[name])
	}
	return out
}

// Coupons returns the registered coupons in registration order.
func (c *Catalog) Coupons() []voucher.Coupon {
	out := make([]voucher.Coupon, 0, len(c.couponOrder))
	for _, code := range c.couponOrder {
		out = append(out, c.coupons[code])
	}
	return out
}
