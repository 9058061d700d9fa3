package session

import (
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/freshcart/api/internal/platform/requestctx"
)

// DefaultHeader is the HTTP header carrying the shopper session identifier.
const DefaultHeader = "X-Session-ID"

const maxSessionIDLength = 64

// Middleware resolves the shopper session for a request. When the client does
// not present a session header a fresh ULID is minted and echoed back so the
// client can persist it. The resolved identifier is stored on the request
// context for services to scope carts and orders.
type Middleware struct {
	header string
	newID  func() string
}

// Option customises Middleware behaviour.
type Option func(*Middleware)

// WithHeader overrides the session header name.
func WithHeader(name string) Option {
	return func(m *Middleware) {
		name = strings.TrimSpace(name)
		if name != "" {
			m.header = name
		}
	}
}

// WithIDGenerator overrides the identifier mint, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(m *Middleware) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// NewMiddleware constructs a session middleware with the provided options.
func NewMiddleware(opts ...Option) *Middleware {
	m := &Middleware{
		header: DefaultHeader,
		newID:  func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Handler wraps the next handler with session resolution.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	if next == nil {
		next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := normaliseSessionID(r.Header.Get(m.header))
		if id == "" {
			id = m.newID()
		}

		w.Header().Set(m.header, id)

		ctx := requestctx.WithSessionID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func normaliseSessionID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxSessionIDLength {
		return ""
	}
	for _, r := range raw {
		valid := r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-' || r == '_'
		if !valid {
			return ""
		}
	}
	return raw
}
