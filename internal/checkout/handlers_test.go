package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type quoteResponse struct {
	Data struct {
		CartID         string `json:"cartId"`
		Subtotal       string `json:"subtotal"`
		CouponDiscount string `json:"couponDiscount"`
		Total          string `json:"total"`
		Invoice        string `json:"invoice"`
		Lines          []struct {
			Product   string `json:"product"`
			Quantity  int    `json:"quantity"`
			Promotion string `json:"promotion"`
		} `json:"lines"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestQuoteHandler(t *testing.T) {
	h := &Handler{Svc: &Service{}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(breakfastJSON))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body quoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "39.07", body.Data.Subtotal)
	require.Equal(t, "3.91", body.Data.CouponDiscount)
	require.Equal(t, "35.16", body.Data.Total)
	require.Len(t, body.Data.Lines, 4)
	require.Equal(t, "buy 1, get 1 free", body.Data.Lines[0].Promotion)
	require.Contains(t, body.Data.Invoice, "Coupon BREAKFAST - 10% off")
}

func TestInvoiceHandler(t *testing.T) {
	h := &Handler{Svc: &Service{}}
	payload := `{"products":[{"name":"Green Tea","price":"1.00"}],"coupons":[{"code":"TEA-TIME","amount":"10.00"}],"items":[{"product":"Green Tea","quantity":5}],"coupon":"TEA-TIME"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Invoice(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	want := `+------------------------------------------------+----------+
| Name                                       qty |    price |
+------------------------------------------------+----------+
| Green Tea                                    5 |     5.00 |
| Coupon TEA-TIME - 10.00 off                    |    -5.00 |
+------------------------------------------------+----------+
| TOTAL                                          |     0.00 |
+------------------------------------------------+----------+
`
	require.Equal(t, want, rec.Body.String())
}

func TestHandlerErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		limit  int64
		status int
		code   string
	}{
		{"malformed", `{"products":`, 0, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown field", `{"basket":[]}`, 0, http.StatusBadRequest, "BAD_REQUEST"},
		{"too large", breakfastJSON, 64, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"validation", `{"products":[{"name":"Tea","price":"-1"}]}`, 0, http.StatusUnprocessableEntity, "INVALID_PRICE"},
		{"duplicate", `{"products":[{"name":"Tea","price":"1"},{"name":"Tea","price":"1"}]}`, 0, http.StatusConflict, "DUPLICATE_PRODUCT"},
		{"not found", `{"items":[{"product":"Tea"}]}`, 0, http.StatusNotFound, "NOT_FOUND"},
		{"shape", `{"items":[{"quantity":2}]}`, 0, http.StatusBadRequest, "INVALID_REQUEST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &Handler{Svc: &Service{}, MaxBodyBytes: tc.limit}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Quote(rec, req)
			require.Equal(t, tc.status, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.code, body.Error.Code)
			require.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestHandlerWithoutService(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	h.Invoice(rec, httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
