package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/platform/requestctx"
	"github.com/freshcart/api/internal/services"
)

type stubCartService struct {
	getFn       func(context.Context, string) (services.PricedCart, error)
	setFn       func(context.Context, services.SetQuantityCommand) (services.PricedCart, error)
	incrementFn func(context.Context, services.AdjustQuantityCommand) (services.PricedCart, error)
	decrementFn func(context.Context, services.AdjustQuantityCommand) (services.PricedCart, error)
	removeFn    func(context.Context, services.RemoveLineCommand) (services.PricedCart, error)
	clearFn     func(context.Context, string) error
}

func (s *stubCartService) GetCart(ctx context.Context, sessionID string) (services.PricedCart, error) {
	if s.getFn != nil {
		return s.getFn(ctx, sessionID)
	}
	return services.PricedCart{}, errors.New("not implemented")
}

func (s *stubCartService) SetQuantity(ctx context.Context, cmd services.SetQuantityCommand) (services.PricedCart, error) {
	if s.setFn != nil {
		return s.setFn(ctx, cmd)
	}
	return services.PricedCart{}, errors.New("not implemented")
}

func (s *stubCartService) Increment(ctx context.Context, cmd services.AdjustQuantityCommand) (services.PricedCart, error) {
	if s.incrementFn != nil {
		return s.incrementFn(ctx, cmd)
	}
	return services.PricedCart{}, errors.New("not implemented")
}

func (s *stubCartService) Decrement(ctx context.Context, cmd services.AdjustQuantityCommand) (services.PricedCart, error) {
	if s.decrementFn != nil {
		return s.decrementFn(ctx, cmd)
	}
	return services.PricedCart{}, errors.New("not implemented")
}

func (s *stubCartService) RemoveLine(ctx context.Context, cmd services.RemoveLineCommand) (services.PricedCart, error) {
	if s.removeFn != nil {
		return s.removeFn(ctx, cmd)
	}
	return services.PricedCart{}, errors.New("not implemented")
}

func (s *stubCartService) ClearCart(ctx context.Context, sessionID string) error {
	if s.clearFn != nil {
		return s.clearFn(ctx, sessionID)
	}
	return errors.New("not implemented")
}

func withTestSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(requestctx.WithSessionID(req.Context(), sessionID))
}

func newCartTestRouter(svc services.CartService) chi.Router {
	r := chi.NewRouter()
	NewCartHandlers(svc).Routes(r)
	return r
}

func testPricedCart() services.PricedCart {
	return services.PricedCart{
		Cart: domain.Cart{
			SessionID:     "s1",
			SupermarketID: "1",
			Lines: []domain.CartLine{
				{Product: domain.Product{ID: "101", Name: "Organic Bananas", Price: 199, SupermarketID: "1", InStock: true}, Quantity: 2},
			},
		},
		Totals: domain.CartTotals{Subtotal: 398, DeliveryFee: 299, Tax: 32, GrandTotal: 729},
	}
}

func TestCartHandlersGetCart(t *testing.T) {
	svc := &stubCartService{
		getFn: func(_ context.Context, sessionID string) (services.PricedCart, error) {
			if sessionID != "s1" {
				return services.PricedCart{}, fmt.Errorf("unexpected session %s", sessionID)
			}
			return testPricedCart(), nil
		},
	}
	r := newCartTestRouter(svc)

	req := withTestSession(httptest.NewRequest(http.MethodGet, "/", nil), "s1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Cart struct {
			ItemCount int `json:"item_count"`
		} `json:"cart"`
		Totals struct {
			GrandTotal int64 `json:"grand_total"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if body.Cart.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", body.Cart.ItemCount)
	}
	if body.Totals.GrandTotal != 729 {
		t.Fatalf("expected grand total 729, got %d", body.Totals.GrandTotal)
	}
}

func TestCartHandlersRequireSession(t *testing.T) {
	r := newCartTestRouter(&stubCartService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session, got %d", rr.Code)
	}
}

func TestCartHandlersSetQuantity(t *testing.T) {
	var got services.SetQuantityCommand
	svc := &stubCartService{
		setFn: func(_ context.Context, cmd services.SetQuantityCommand) (services.PricedCart, error) {
			got = cmd
			return testPricedCart(), nil
		},
	}
	r := newCartTestRouter(svc)

	req := withTestSession(httptest.NewRequest(http.MethodPut, "/items/101", strings.NewReader(`{"quantity":3,"replace":true}`)), "s1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got.SessionID != "s1" || got.ProductID != "101" || got.Quantity != 3 || !got.Replace {
		t.Fatalf("unexpected command %+v", got)
	}
}

func TestCartHandlersSetQuantityRequiresBody(t *testing.T) {
	r := newCartTestRouter(&stubCartService{})

	req := withTestSession(httptest.NewRequest(http.MethodPut, "/items/101", strings.NewReader(`{}`)), "s1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing quantity, got %d", rr.Code)
	}
}

func TestCartHandlersIncrement(t *testing.T) {
	var got services.AdjustQuantityCommand
	svc := &stubCartService{
		incrementFn: func(_ context.Context, cmd services.AdjustQuantityCommand) (services.PricedCart, error) {
			got = cmd
			return testPricedCart(), nil
		},
	}
	r := newCartTestRouter(svc)

	req := withTestSession(httptest.NewRequest(http.MethodPost, "/items/101/increment?replace=true", nil), "s1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got.ProductID != "101" || !got.Replace {
		t.Fatalf("unexpected command %+v", got)
	}
}

func TestCartHandlersSupermarketMismatch(t *testing.T) {
	svc := &stubCartService{
		setFn: func(context.Context, services.SetQuantityCommand) (services.PricedCart, error) {
			return services.PricedCart{}, fmt.Errorf("%w: cart holds items from supermarket 1", services.ErrCartSupermarketMismatch)
		},
	}
	r := newCartTestRouter(svc)

	req := withTestSession(httptest.NewRequest(http.MethodPut, "/items/201", strings.NewReader(`{"quantity":1}`)), "s1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if body["error"] != "cart_supermarket_mismatch" {
		t.Fatalf("expected mismatch code, got %v", body["error"])
	}
}

func TestCartHandlersClearCart(t *testing.T) {
	cleared := ""
	svc := &stubCartService{
		clearFn: func(_ context.Context, sessionID string) error {
			cleared = sessionID
			return nil
		},
	}
	r := newCartTestRouter(svc)

	req := withTestSession(httptest.NewRequest(http.MethodDelete, "/", nil), "s1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if cleared != "s1" {
		t.Fatalf("expected clear for s1, got %q", cleared)
	}
}
