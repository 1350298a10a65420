// Package checkout prices complete scenarios for the HTTP API and CLI.
package checkout

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/toko-till/internal/catalog"
	"github.com/noah-isme/toko-till/internal/common"
	"github.com/noah-isme/toko-till/internal/pricing"
)

// Quote is the priced result of a Request.
type Quote struct {
	CartID string `json:"cartId"`
	catalog.Summary
	Invoice string `json:"invoice"`
}

// Service builds a fresh catalog and cart for every request.
type Service struct {
	Limits   catalog.Limits
	Rounding pricing.Rounding
	Logger   *zerolog.Logger
	Recorder catalog.Recorder
}

// Quote validates req, replays it against a new catalog and prices the cart.
func (s *Service) Quote(ctx context.Context, req Request) (Quote, error) {
	ctx, span := otel.Tracer("checkout.Service").Start(ctx, "checkout.quote")
	defer span.End()

	span.SetAttributes(
		attribute.Int("quote.products", len(req.Products)),
		attribute.Int("quote.items", len(req.Items)),
		attribute.String("quote.rounding", s.Rounding.String()),
	)
	cart, err := s.build(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, common.ErrorCode(err))
		return Quote{}, err
	}
	summary := cart.Summary()
	out := Quote{CartID: cart.ID().String(), Summary: summary, Invoice: cart.Invoice()}
	span.SetAttributes(
		attribute.String("cart.id", out.CartID),
		attribute.String("quote.total", summary.Total.String()),
	)
	s.logger().Info().
		Str("cart_id", out.CartID).
		Int("lines", len(summary.Lines)).
		Str("total", summary.Total.String()).
		Msg("quote priced")
	return out, nil
}

// Invoice is Quote reduced to the rendered invoice.
func (s *Service) Invoice(ctx context.Context, req Request) (string, error) {
	q, err := s.Quote(ctx, req)
	if err != nil {
		return "", err
	}
	return q.Invoice, nil
}

func (s *Service) build(ctx context.Context, req Request) (*catalog.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	cat := catalog.New(catalog.Config{
		Limits:   s.Limits,
		Rounding: s.Rounding,
		Logger:   s.Logger,
		Recorder: s.Recorder,
	})
	for i, p := range req.Products {
		rule, err := p.Promotion.Rule()
		if err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
		if err := cat.Register(p.Name, p.Price, rule); err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
	}
	for i, c := range req.Coupons {
		if err := cat.RegisterCoupon(c.Code, c.Spec); err != nil {
			return nil, fmt.Errorf("coupons[%d]: %w", i, err)
		}
	}
	cart := cat.NewCart()
	if req.Coupon != "" {
		if err := cart.Use(req.Coupon); err != nil {
			return nil, err
		}
	}
	for i, it := range req.Items {
		qty := catalog.DefaultQuantity
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		if err := cart.Add(it.Product, qty); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return cart, nil
}

func (s *Service) logger() *zerolog.Logger {
	if s.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return s.Logger
}
