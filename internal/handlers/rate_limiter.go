package handlers

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/freshcart/api/internal/platform/httpx"
)

type rateLimiter interface {
	Allow(key string) bool
}

// simpleRateLimiter counts requests per key inside a fixed window. Counters
// reset when the window rolls over rather than sliding.
type simpleRateLimiter struct {
	limit  int
	window time.Duration
	clock  func() time.Time

	mu      sync.Mutex
	buckets map[string]bucket
}

type bucket struct {
	used    int
	resetAt time.Time
}

// newSimpleRateLimiter returns nil when the limit or window disables limiting.
func newSimpleRateLimiter(limit int, window time.Duration, clock func() time.Time) rateLimiter {
	if limit <= 0 || window <= 0 {
		return nil
	}
	if clock == nil {
		clock = time.Now
	}
	return &simpleRateLimiter{
		limit:   limit,
		window:  window,
		clock:   clock,
		buckets: make(map[string]bucket),
	}
}

func (l *simpleRateLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	if key = strings.TrimSpace(key); key == "" {
		key = "anonymous"
	}
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	switch {
	case !ok || now.After(b.resetAt):
		l.dropStaleLocked(now)
		l.buckets[key] = bucket{used: 1, resetAt: now.Add(l.window)}
		return true
	case b.used >= l.limit:
		return false
	default:
		b.used++
		l.buckets[key] = b
		return true
	}
}

// dropStaleLocked evicts rolled-over counters so abandoned sessions do not
// accumulate. Called with l.mu held, on the new-bucket path only.
func (l *simpleRateLimiter) dropStaleLocked(now time.Time) {
	for key, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, key)
		}
	}
}

// RateLimitMiddleware bounds mutating traffic per session. Requests without a
// session fall back to the client address so anonymous probes share one bucket
// per host. A limit or window of zero disables the middleware.
func RateLimitMiddleware(limit int, window time.Duration) func(http.Handler) http.Handler {
	limiter := newSimpleRateLimiter(limit, window, nil)
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := sessionFromRequest(r)
			if key == "" {
				if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
					key = host
				} else {
					key = r.RemoteAddr
				}
			}
			if !limiter.Allow(key) {
				httpx.WriteError(r.Context(), w, httpx.NewError("rate_limited", "too many requests", http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
