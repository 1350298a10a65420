package checkout

import (
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/toko-till/internal/common"
	"github.com/noah-isme/toko-till/internal/promotion"
	"github.com/noah-isme/toko-till/internal/voucher"
)

// ProductInput registers one product.
type ProductInput struct {
	Name      string          `json:"name"`
	Price     string          `json:"price"`
	Promotion *promotion.Spec `json:"promotion,omitempty"`
}

// CouponInput registers one coupon; Percent and Amount come from the embedded spec.
type CouponInput struct {
	Code string `json:"code"`
	voucher.Spec
}

// ItemInput adds a product to the cart. A nil quantity means one unit.
type ItemInput struct {
	Product  string `json:"product" validate:"required"`
	Quantity *int   `json:"quantity,omitempty"`
}

// Request is a complete scenario: what the catalog holds and what is carted.
type Request struct {
	Products []ProductInput `json:"products" validate:"max=1000,dive"`
	Coupons  []CouponInput  `json:"coupons" validate:"max=1000,dive"`
	Items    []ItemInput    `json:"items" validate:"max=1000,dive"`
	Coupon   string         `json:"coupon,omitempty"`
}

// ErrInvalidRequest is returned when the payload shape is wrong.
var ErrInvalidRequest = common.NewAppError("INVALID_REQUEST", "invalid request", http.StatusBadRequest, nil)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateRequest(req Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: fe.Namespace(), Rule: fe.Tag()})
	}
	return &common.AppError{
		Code:       ErrInvalidRequest.Code,
		Message:    ErrInvalidRequest.Message,
		HTTPStatus: ErrInvalidRequest.HTTPStatus,
		Err:        ErrInvalidRequest,
		Details:    details,
	}
}
