package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freshcart/api/internal/platform/requestctx"
)

func TestMiddlewareMintsSessionWhenHeaderMissing(t *testing.T) {
	mw := NewMiddleware(WithIDGenerator(func() string { return "minted-session" }))

	var seen string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.SessionID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if seen != "minted-session" {
		t.Fatalf("expected minted session on context, got %q", seen)
	}
	if got := rec.Header().Get(DefaultHeader); got != "minted-session" {
		t.Fatalf("expected session echoed in response header, got %q", got)
	}
}

func TestMiddlewareKeepsClientSession(t *testing.T) {
	mw := NewMiddleware(WithIDGenerator(func() string { return "should-not-mint" }))

	var seen string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(DefaultHeader, "client-session-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "client-session-01" {
		t.Fatalf("expected client session preserved, got %q", seen)
	}
}

func TestMiddlewareRejectsMalformedSession(t *testing.T) {
	mw := NewMiddleware(WithIDGenerator(func() string { return "replacement" }))

	var seen string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(DefaultHeader, "bad session\nid")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "replacement" {
		t.Fatalf("expected malformed session replaced, got %q", seen)
	}
}

func TestMiddlewareCustomHeader(t *testing.T) {
	mw := NewMiddleware(WithHeader("X-Shopper"), WithIDGenerator(func() string { return "fresh" }))

	handler := mw.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Shopper"); got != "fresh" {
		t.Fatalf("expected custom header populated, got %q", got)
	}
}
