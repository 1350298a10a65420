package ratelimit

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// Limiter implements fixed-window counters on top of an ulule limiter store.
type Limiter struct {
	Store limiter.Store
}

// NewMemoryLimiter returns a Limiter whose counters live in process memory.
func NewMemoryLimiter() Limiter {
	return Limiter{Store: memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: "till", CleanUpInterval: time.Minute})}
}

// Allow increments the counter for key and reports whether the request fits in
// the window. It also returns the remaining budget and when the window resets.
func (l Limiter) Allow(ctx context.Context, key string, window time.Duration, limit int) (bool, int, time.Time, error) {
	if l.Store == nil {
		return false, 0, time.Time{}, errors.New("rate limiter store not configured")
	}
	if window <= 0 || limit <= 0 {
		return true, limit, time.Now(), nil
	}
	instance := limiter.New(l.Store, limiter.Rate{Period: window, Limit: int64(limit)})
	lc, err := instance.Get(ctx, key)
	if err != nil {
		return false, 0, time.Time{}, err
	}
	return !lc.Reached, int(lc.Remaining), time.Unix(lc.Reset, 0), nil
}

// ClientIP keys requests by remote address, without the port. Pair it with
// chi's RealIP middleware when running behind a proxy.
func ClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
