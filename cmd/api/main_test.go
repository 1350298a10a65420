package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-till/internal/checkout"
	"github.com/noah-isme/toko-till/internal/config"
	"github.com/noah-isme/toko-till/internal/obs"
)

func testRouter(t *testing.T, perMinute int) http.Handler {
	t.Helper()
	cfg, err := config.LoadForTests(map[string]string{"RATE_LIMIT_PER_MINUTE": "", "PRICING_ROUNDING": ""})
	require.NoError(t, err)
	cfg.RateLimitPerMinute = perMinute
	registry := prometheus.NewRegistry()
	svc := &checkout.Service{Limits: cfg.Limits, Rounding: cfg.Rounding, Recorder: obs.NewPricingMetrics("test", registry)}
	return newRouter(cfg, zerolog.Nop(), &checkout.Handler{Svc: svc}, obs.NewHTTPMetrics("test", nil, registry))
}

func TestRouterServesInvoices(t *testing.T) {
	r := testRouter(t, 0)
	body, err := json.Marshal(checkout.SampleRequest())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(string(body))))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "|    35.16 |")
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterRateLimitsQuotes(t *testing.T) {
	r := testRouter(t, 1)
	send := func() int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(`{}`))
		req.RemoteAddr = "198.51.100.4:4000"
		r.ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusOK, send())
	require.Equal(t, http.StatusTooManyRequests, send())
}

func TestProtectPprof(t *testing.T) {
	h := protectPprof(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), "admin", "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.SetBasicAuth("admin", "secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
