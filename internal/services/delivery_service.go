package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/repositories"
)

var (
	// ErrDeliveryUnavailable indicates courier data failed to load.
	ErrDeliveryUnavailable = errors.New("delivery service: unavailable")
)

// DeliveryServiceDeps bundles constructor inputs for the delivery service.
type DeliveryServiceDeps struct {
	Orders   OrderService
	Couriers repositories.CourierRepository
	Clock    func() time.Time
}

type deliveryService struct {
	orders   OrderService
	couriers repositories.CourierRepository
	clock    func() time.Time
}

// NewDeliveryService constructs the delivery service with the supplied dependencies.
func NewDeliveryService(deps DeliveryServiceDeps) (DeliveryService, error) {
	if deps.Orders == nil {
		return nil, fmt.Errorf("delivery service: order service is required")
	}
	if deps.Couriers == nil {
		return nil, fmt.Errorf("delivery service: courier repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &deliveryService{
		orders:   deps.Orders,
		couriers: deps.Couriers,
		clock:    func() time.Time { return clock().UTC() },
	}, nil
}

// TrackOrder projects the order status onto the fixed delivery timeline.
// Cancelled orders mark no step active.
func (s *deliveryService) TrackOrder(ctx context.Context, cmd TrackOrderCommand) (DeliveryStatus, error) {
	order, err := s.orders.GetOrder(ctx, GetOrderCommand{
		SessionID: cmd.SessionID,
		OrderID:   cmd.OrderID,
	})
	if err != nil {
		return DeliveryStatus{}, err
	}

	idx := order.Status.StepIndex()
	steps := make([]DeliveryStep, len(domain.DeliveryPipeline))
	for i, status := range domain.DeliveryPipeline {
		steps[i] = DeliveryStep{
			Status:    status,
			Completed: idx >= 0 && i <= idx,
			Current:   i == idx,
		}
	}

	return DeliveryStatus{
		OrderID:           order.ID,
		Status:            order.Status,
		StepIndex:         idx,
		Steps:             steps,
		Cancelled:         order.Status == domain.OrderStatusCancelled,
		Late:              order.Late(s.clock()),
		EstimatedDelivery: order.EstimatedDelivery,
		Courier:           order.Courier,
	}, nil
}

func (s *deliveryService) ListCouriers(ctx context.Context) ([]Courier, error) {
	couriers, err := s.couriers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDeliveryUnavailable, err.Error())
	}
	return couriers, nil
}
