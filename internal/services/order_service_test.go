package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/platform/pagination"
)

var orderTestNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestOrderService(t *testing.T, orders *stubOrderRepo, couriers *stubCourierRepo) OrderService {
	t.Helper()
	if couriers == nil {
		couriers = &stubCourierRepo{couriers: map[string]domain.Courier{
			"d1": {ID: "d1", Name: "James Wilson", Vehicle: "Honda Scooter", Rating: 4.9},
		}}
	}
	svc, err := NewOrderService(OrderServiceDeps{
		Orders:   orders,
		Couriers: couriers,
		Clock:    func() time.Time { return orderTestNow },
	})
	if err != nil {
		t.Fatalf("NewOrderService: %v", err)
	}
	return svc
}

func TestOrderServiceListOrdersEncodesToken(t *testing.T) {
	orders := newStubOrderRepo()
	orders.listPage = domain.CursorPage[domain.Order]{
		Items:         []domain.Order{{ID: "order-2", SessionID: "s1"}, {ID: "order-1", SessionID: "s1"}},
		NextPageToken: "order-1",
	}
	svc := newTestOrderService(t, orders, nil)

	page, err := svc.ListOrders(context.Background(), OrderListFilter{
		SessionID: "s1",
		Pager:     domain.Pagination{PageSize: 2},
	})
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(page.Items))
	}
	cursor, err := pagination.DecodeToken(page.NextPageToken)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if cursor.LastID != "order-1" {
		t.Fatalf("expected cursor order-1, got %s", cursor.LastID)
	}
}

func TestOrderServiceListOrdersDecodesToken(t *testing.T) {
	orders := newStubOrderRepo()
	svc := newTestOrderService(t, orders, nil)

	token, err := pagination.EncodeToken(pagination.Cursor{LastID: "order-5"})
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	if _, err := svc.ListOrders(context.Background(), OrderListFilter{
		SessionID: "s1",
		Pager:     domain.Pagination{PageSize: 5, PageToken: token},
	}); err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if orders.lastList.AfterID != "order-5" {
		t.Fatalf("expected cursor passed through, got %q", orders.lastList.AfterID)
	}
}

func TestOrderServiceListOrdersRejectsBadToken(t *testing.T) {
	svc := newTestOrderService(t, newStubOrderRepo(), nil)

	_, err := svc.ListOrders(context.Background(), OrderListFilter{
		SessionID: "s1",
		Pager:     domain.Pagination{PageToken: "not-base64!"},
	})
	if !errors.Is(err, ErrOrderInvalidInput) {
		t.Fatalf("expected ErrOrderInvalidInput, got %v", err)
	}
}

func TestOrderServiceGetOrderOwnership(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["o1"] = domain.Order{ID: "o1", SessionID: "s1", Status: domain.OrderStatusConfirmed}
	svc := newTestOrderService(t, orders, nil)

	order, err := svc.GetOrder(context.Background(), GetOrderCommand{SessionID: "s1", OrderID: "o1"})
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if order.ID != "o1" {
		t.Fatalf("expected order o1, got %s", order.ID)
	}

	if _, err := svc.GetOrder(context.Background(), GetOrderCommand{SessionID: "other", OrderID: "o1"}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign session, got %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), GetOrderCommand{SessionID: "s1", OrderID: "missing"}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderServiceTransitionForward(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["o1"] = domain.Order{ID: "o1", SessionID: "s1", Status: domain.OrderStatusConfirmed}
	svc := newTestOrderService(t, orders, nil)
	ctx := context.Background()

	order, err := svc.TransitionStatus(ctx, OrderStatusTransitionCommand{OrderID: "o1", Status: domain.OrderStatusPreparing})
	if err != nil {
		t.Fatalf("TransitionStatus: %v", err)
	}
	if order.Status != domain.OrderStatusPreparing {
		t.Fatalf("expected preparing, got %s", order.Status)
	}

	// Skipping a step is not allowed.
	if _, err := svc.TransitionStatus(ctx, OrderStatusTransitionCommand{OrderID: "o1", Status: domain.OrderStatusDelivered}); !errors.Is(err, ErrOrderInvalidTransition) {
		t.Fatalf("expected ErrOrderInvalidTransition, got %v", err)
	}

	if _, err := svc.TransitionStatus(ctx, OrderStatusTransitionCommand{OrderID: "o1", Status: domain.OrderStatusOutForDelivery}); err != nil {
		t.Fatalf("TransitionStatus: %v", err)
	}
	order, err = svc.TransitionStatus(ctx, OrderStatusTransitionCommand{OrderID: "o1", Status: domain.OrderStatusDelivered})
	if err != nil {
		t.Fatalf("TransitionStatus: %v", err)
	}
	if order.DeliveredAt == nil || !order.DeliveredAt.Equal(orderTestNow) {
		t.Fatalf("expected delivered timestamp %v, got %v", orderTestNow, order.DeliveredAt)
	}
}

func TestOrderServiceCancel(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["o1"] = domain.Order{ID: "o1", SessionID: "s1", Status: domain.OrderStatusPreparing}
	svc := newTestOrderService(t, orders, nil)

	order, err := svc.TransitionStatus(context.Background(), OrderStatusTransitionCommand{
		OrderID:   "o1",
		SessionID: "s1",
		Status:    domain.OrderStatusCancelled,
	})
	if err != nil {
		t.Fatalf("TransitionStatus: %v", err)
	}
	if order.Status != domain.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", order.Status)
	}
	if order.CancelledAt == nil || !order.CancelledAt.Equal(orderTestNow) {
		t.Fatalf("expected cancellation timestamp %v, got %v", orderTestNow, order.CancelledAt)
	}

	// A terminal order cannot be cancelled again.
	if _, err := svc.TransitionStatus(context.Background(), OrderStatusTransitionCommand{
		OrderID:   "o1",
		SessionID: "s1",
		Status:    domain.OrderStatusCancelled,
	}); !errors.Is(err, ErrOrderInvalidTransition) {
		t.Fatalf("expected ErrOrderInvalidTransition, got %v", err)
	}
}

func TestOrderServiceAssignCourier(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["o1"] = domain.Order{ID: "o1", SessionID: "s1", Status: domain.OrderStatusOutForDelivery}
	svc := newTestOrderService(t, orders, nil)

	order, err := svc.AssignCourier(context.Background(), AssignCourierCommand{
		SessionID: "s1",
		OrderID:   "o1",
		CourierID: "d1",
	})
	if err != nil {
		t.Fatalf("AssignCourier: %v", err)
	}
	if order.Courier == nil || order.Courier.Name != "James Wilson" {
		t.Fatalf("expected courier snapshot, got %+v", order.Courier)
	}

	if _, err := svc.AssignCourier(context.Background(), AssignCourierCommand{
		SessionID: "s1",
		OrderID:   "o1",
		CourierID: "ghost",
	}); !errors.Is(err, ErrOrderInvalidInput) {
		t.Fatalf("expected ErrOrderInvalidInput for unknown courier, got %v", err)
	}
}
