package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/freshcart/api/internal/domain"
)

func pricingMarkets() *stubSupermarketRepo {
	return &stubSupermarketRepo{markets: map[string]domain.Supermarket{
		"1": {ID: "1", Name: "Fresh Market", HasDelivery: true, DeliveryFee: 299},
		"4": {ID: "4", Name: "Premium Foods", HasDelivery: false},
	}}
}

func newTestPricingEngine(t *testing.T) *CartPricingEngine {
	t.Helper()
	engine, err := NewCartPricingEngine(CartPricingEngineDeps{
		Supermarkets:       pricingMarkets(),
		TaxRateBps:         800,
		DefaultDeliveryFee: 399,
	})
	if err != nil {
		t.Fatalf("NewCartPricingEngine: %v", err)
	}
	return engine
}

func TestCartPricingEngineEmptyCart(t *testing.T) {
	engine := newTestPricingEngine(t)

	totals, err := engine.Calculate(context.Background(), PriceCartCommand{Cart: domain.Cart{SessionID: "s1"}})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if totals != (domain.CartTotals{}) {
		t.Fatalf("expected zero totals for empty cart, got %+v", totals)
	}
}

func TestCartPricingEngineTotals(t *testing.T) {
	engine := newTestPricingEngine(t)

	cart := domain.Cart{
		SessionID:     "s1",
		SupermarketID: "1",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "101", Price: 199, SupermarketID: "1"}, Quantity: 2},
			{Product: domain.Product{ID: "102", Price: 629, SupermarketID: "1"}, Quantity: 1},
		},
	}

	totals, err := engine.Calculate(context.Background(), PriceCartCommand{Cart: cart})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if totals.Subtotal != 1027 {
		t.Fatalf("expected subtotal 1027, got %d", totals.Subtotal)
	}
	if totals.DeliveryFee != 299 {
		t.Fatalf("expected delivery fee 299, got %d", totals.DeliveryFee)
	}
	// 8% of 1027 is 82.16, rounded half-up to 82.
	if totals.Tax != 82 {
		t.Fatalf("expected tax 82, got %d", totals.Tax)
	}
	if totals.GrandTotal != 1027+299+82 {
		t.Fatalf("expected grand total %d, got %d", 1027+299+82, totals.GrandTotal)
	}
}

func TestCartPricingEngineDefaultFeeWithoutDelivery(t *testing.T) {
	engine := newTestPricingEngine(t)

	cart := domain.Cart{
		SessionID:     "s1",
		SupermarketID: "4",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "401", Price: 1000, SupermarketID: "4"}, Quantity: 1},
		},
	}

	totals, err := engine.Calculate(context.Background(), PriceCartCommand{Cart: cart})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if totals.DeliveryFee != 399 {
		t.Fatalf("expected default delivery fee 399, got %d", totals.DeliveryFee)
	}
}

func TestCartPricingEngineUnknownSupermarket(t *testing.T) {
	engine := newTestPricingEngine(t)

	cart := domain.Cart{
		SessionID:     "s1",
		SupermarketID: "missing",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "x", Price: 100}, Quantity: 1},
		},
	}

	if _, err := engine.Calculate(context.Background(), PriceCartCommand{Cart: cart}); !errors.Is(err, ErrCartPricingInvalidInput) {
		t.Fatalf("expected ErrCartPricingInvalidInput, got %v", err)
	}
}

func TestCartPricingEngineRejectsNegativePrice(t *testing.T) {
	engine := newTestPricingEngine(t)

	cart := domain.Cart{
		SessionID:     "s1",
		SupermarketID: "1",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "101", Price: -1, SupermarketID: "1"}, Quantity: 1},
		},
	}

	if _, err := engine.Calculate(context.Background(), PriceCartCommand{Cart: cart}); !errors.Is(err, ErrCartPricingInvalidInput) {
		t.Fatalf("expected ErrCartPricingInvalidInput, got %v", err)
	}
}

func TestCartPricingEngineTaxRounding(t *testing.T) {
	engine := newTestPricingEngine(t)

	cases := []struct {
		subtotal int64
		tax      int64
	}{
		{100, 8},
		{106, 8},  // 8.48 rounds down
		{107, 9},  // 8.56 rounds up
		{1250, 100},
	}
	for _, tc := range cases {
		cart := domain.Cart{
			SessionID:     "s1",
			SupermarketID: "1",
			Lines: []domain.CartLine{
				{Product: domain.Product{ID: "p", Price: tc.subtotal, SupermarketID: "1"}, Quantity: 1},
			},
		}
		totals, err := engine.Calculate(context.Background(), PriceCartCommand{Cart: cart})
		if err != nil {
			t.Fatalf("Calculate(%d): %v", tc.subtotal, err)
		}
		if totals.Tax != tc.tax {
			t.Fatalf("subtotal %d: expected tax %d, got %d", tc.subtotal, tc.tax, totals.Tax)
		}
	}
}
