package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultQuantity is the quantity front ends use when none is given.
const DefaultQuantity = 1

// Line is a product name and the accumulated quantity carted for it.
type Line struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Cart accumulates lines and at most one coupon against a Catalog.
type Cart struct {
	id      uuid.UUID
	catalog *Catalog
	logger  zerolog.Logger
	lines   []Line
	index   map[string]int
	coupon  string
}

// NewCart creates an empty cart bound to the catalog.
func (c *Catalog) NewCart() *Cart {
	id := uuid.New()
	return &Cart{
		id:      id,
		catalog: c,
		logger:  c.logger.With().Str("cart_id", id.String()).Logger(),
		index:   make(map[string]int),
	}
}

// ID identifies the cart in logs and responses.
func (c *Cart) ID() uuid.UUID { return c.id }

// Add puts quantity units of the named product in the cart, merging with an
// existing line. On error the cart is left unchanged.
func (c *Cart) Add(name string, quantity int) (err error) {
	defer func() { c.catalog.recorder.CartOperation("add", err) }()

	if _, ferr := c.catalog.FindProduct(name); ferr != nil {
		return fmt.Errorf("add: %w", ferr)
	}
	if quantity <= 0 {
		return fmt.Errorf("add %q: quantity %d must be positive: %w", name, quantity, ErrInvalidQuantity)
	}
	limit := c.catalog.limits.MaxLineQuantity
	pos, exists := c.index[name]
	current := 0
	if exists {
		current = c.lines[pos].Quantity
	}
	if quantity > limit-current {
		return fmt.Errorf("add %q: %d + %d exceeds %d per line: %w", name, current, quantity, limit, ErrInvalidQuantity)
	}

	if exists {
		c.lines[pos].Quantity += quantity
	} else {
		c.index[name] = len(c.lines)
		c.lines = append(c.lines, Line{Product: name, Quantity: quantity})
	}
	c.logger.Debug().
		Str("product", name).
		Int("quantity", quantity).
		Int("line_quantity", current+quantity).
		Msg("cart line added")
	return nil
}

// Use applies a registered coupon. A cart takes one coupon; it cannot be replaced.
func (c *Cart) Use(code string) (err error) {
	defer func() { c.catalog.recorder.CartOperation("use", err) }()

	if _, ferr := c.catalog.FindCoupon(code); ferr != nil {
		return fmt.Errorf("use: %w", ferr)
	}
	if c.coupon != "" {
		return fmt.Errorf("use %q: %q already applied: %w", code, c.coupon, ErrCouponAlreadyApplied)
	}
	c.coupon = code
	c.logger.Debug().Str("coupon", code).Msg("coupon applied")
	return nil
}

// Lines returns a copy of the cart lines in first-added order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Coupon returns the applied coupon code and whether one is set.
func (c *Cart) Coupon() (string, bool) {
	return c.coupon, c.coupon != ""
}
