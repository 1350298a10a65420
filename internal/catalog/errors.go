package catalog

import (
	"net/http"

	"github.com/noah-isme/toko-till/internal/common"
	"github.com/noah-isme/toko-till/internal/promotion"
	"github.com/noah-isme/toko-till/internal/voucher"
)

var (
	// ErrInvalidName is returned for empty or over-long product names.
	ErrInvalidName = common.NewValidationError("INVALID_NAME", "invalid product name")
	// ErrInvalidPrice is returned for unparseable, non-positive or over-limit unit prices.
	ErrInvalidPrice = common.NewValidationError("INVALID_PRICE", "invalid unit price")
	// ErrDuplicateProduct indicates the product name is already registered.
	ErrDuplicateProduct = common.NewAppError("DUPLICATE_PRODUCT", "product already registered", http.StatusConflict, nil)
	// ErrDuplicateCoupon indicates the coupon code is already registered.
	ErrDuplicateCoupon = common.NewAppError("DUPLICATE_COUPON", "coupon already registered", http.StatusConflict, nil)
	// ErrNotFound is returned when a product or coupon lookup misses.
	ErrNotFound = common.NewAppError("NOT_FOUND", "not found", http.StatusNotFound, nil)
	// ErrInvalidQuantity is returned for non-positive quantities or lines past the cap.
	ErrInvalidQuantity = common.NewValidationError("INVALID_QUANTITY", "invalid quantity")
	// ErrCouponAlreadyApplied is returned when a cart already carries a coupon.
	ErrCouponAlreadyApplied = common.NewAppError("COUPON_ALREADY_APPLIED", "coupon already applied", http.StatusConflict, nil)

	ErrInvalidCoupon = voucher.ErrInvalidCoupon
	ErrInvalidRule   = promotion.ErrInvalidRule
)
