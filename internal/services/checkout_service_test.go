package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/freshcart/api/internal/domain"
)

var checkoutTestNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

var checkoutTestAddress = domain.Address{
	Label:      "Home",
	Street:     "12 Elm Street",
	City:       "Springfield",
	PostalCode: "12345",
}

func checkoutTestCart() domain.Cart {
	return domain.Cart{
		SessionID:     "s1",
		SupermarketID: "1",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "101", Name: "Organic Bananas", Price: 199, Unit: "per lb", Category: "Fruits", SupermarketID: "1", InStock: true}, Quantity: 2},
			{Product: domain.Product{ID: "102", Name: "Whole Milk", Price: 449, OriginalPrice: 499, Unit: "1 gallon", Category: "Dairy", SupermarketID: "1", InStock: true}, Quantity: 1},
		},
	}
}

type checkoutFixture struct {
	carts  *stubCartRepo
	orders *stubOrderRepo
	svc    CheckoutService
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()
	carts := newStubCartRepo()
	carts.carts["s1"] = checkoutTestCart()
	orders := newStubOrderRepo()
	svc, err := NewCheckoutService(CheckoutServiceDeps{
		Carts:  carts,
		Orders: orders,
		Supermarkets: &stubSupermarketRepo{markets: map[string]domain.Supermarket{
			"1": {ID: "1", Name: "Fresh Market", HasDelivery: true, DeliveryFee: 299, DeliveryTimeMinutes: 25},
			"4": {ID: "4", Name: "Premium Foods", HasDelivery: false, DeliveryTimeMinutes: 40},
		}},
		Pricer:      &stubPricer{totals: domain.CartTotals{Subtotal: 847, DeliveryFee: 299, Tax: 68, GrandTotal: 1214}},
		Clock:       func() time.Time { return checkoutTestNow },
		IDGenerator: func() string { return "ORDER-1" },
	})
	if err != nil {
		t.Fatalf("NewCheckoutService: %v", err)
	}
	return checkoutFixture{carts: carts, orders: orders, svc: svc}
}

func TestCheckoutServiceCreateOrder(t *testing.T) {
	fx := newCheckoutFixture(t)

	order, err := fx.svc.CreateOrder(context.Background(), CreateOrderCommand{
		SessionID:       "s1",
		PaymentMethod:   domain.PaymentMethodCreditCard,
		DeliveryAddress: checkoutTestAddress,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.ID != "ORDER-1" {
		t.Fatalf("expected generated id, got %s", order.ID)
	}
	if order.Status != domain.OrderStatusConfirmed {
		t.Fatalf("expected confirmed status, got %s", order.Status)
	}
	if order.SupermarketName != "Fresh Market" {
		t.Fatalf("expected supermarket name snapshot, got %s", order.SupermarketName)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(order.Lines))
	}
	first := order.Lines[0]
	if first.ProductID != "101" || first.Quantity != 2 || first.LineTotal != 398 {
		t.Fatalf("unexpected first line %+v", first)
	}
	if order.Totals.GrandTotal != 1214 {
		t.Fatalf("expected grand total 1214, got %d", order.Totals.GrandTotal)
	}
	want := checkoutTestNow.Add(25 * time.Minute)
	if !order.EstimatedDelivery.Equal(want) {
		t.Fatalf("expected estimate %v, got %v", want, order.EstimatedDelivery)
	}
	if order.CustomDelivery {
		t.Fatalf("did not expect custom delivery for a delivering storefront")
	}

	if _, ok := fx.carts.carts["s1"]; ok {
		t.Fatalf("expected cart cleared after checkout")
	}
}

func TestCheckoutServiceEmptyCart(t *testing.T) {
	fx := newCheckoutFixture(t)
	delete(fx.carts.carts, "s1")

	_, err := fx.svc.CreateOrder(context.Background(), CreateOrderCommand{
		SessionID:       "s1",
		PaymentMethod:   domain.PaymentMethodWallet,
		DeliveryAddress: checkoutTestAddress,
	})
	if !errors.Is(err, ErrCheckoutEmptyCart) {
		t.Fatalf("expected ErrCheckoutEmptyCart, got %v", err)
	}
}

func TestCheckoutServiceValidation(t *testing.T) {
	fx := newCheckoutFixture(t)

	cases := []struct {
		name string
		cmd  CreateOrderCommand
	}{
		{"missing session", CreateOrderCommand{PaymentMethod: domain.PaymentMethodWallet, DeliveryAddress: checkoutTestAddress}},
		{"unknown payment method", CreateOrderCommand{SessionID: "s1", PaymentMethod: "barter", DeliveryAddress: checkoutTestAddress}},
		{"blank address", CreateOrderCommand{SessionID: "s1", PaymentMethod: domain.PaymentMethodWallet}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := fx.svc.CreateOrder(context.Background(), tc.cmd); !errors.Is(err, ErrCheckoutInvalidInput) {
				t.Fatalf("expected ErrCheckoutInvalidInput, got %v", err)
			}
		})
	}
}

func TestCheckoutServiceCustomDeliveryWithoutService(t *testing.T) {
	fx := newCheckoutFixture(t)
	cart := checkoutTestCart()
	cart.SupermarketID = "4"
	for i := range cart.Lines {
		cart.Lines[i].Product.SupermarketID = "4"
	}
	fx.carts.carts["s1"] = cart

	order, err := fx.svc.CreateOrder(context.Background(), CreateOrderCommand{
		SessionID:       "s1",
		PaymentMethod:   domain.PaymentMethodCashOnDelivery,
		DeliveryAddress: checkoutTestAddress,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if !order.CustomDelivery {
		t.Fatalf("expected custom delivery for non-delivering storefront")
	}
	// The storefront advertises 40 minutes but does not deliver, so the
	// configured fallback applies.
	want := checkoutTestNow.Add(defaultDeliveryEstimateOffset)
	if !order.EstimatedDelivery.Equal(want) {
		t.Fatalf("expected estimate %v, got %v", want, order.EstimatedDelivery)
	}
}
