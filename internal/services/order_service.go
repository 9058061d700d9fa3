package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/platform/pagination"
	"github.com/freshcart/api/internal/repositories"
)

var (
	// ErrOrderInvalidInput indicates the caller supplied invalid parameters.
	ErrOrderInvalidInput = errors.New("order service: invalid input")
	// ErrOrderNotFound indicates the order does not exist or belongs to another session.
	ErrOrderNotFound = errors.New("order service: order not found")
	// ErrOrderInvalidTransition indicates the requested status change breaks the pipeline.
	ErrOrderInvalidTransition = errors.New("order service: invalid status transition")
	// ErrOrderUnavailable indicates order storage failed to answer.
	ErrOrderUnavailable = errors.New("order service: order storage unavailable")
)

// OrderServiceDeps bundles constructor inputs for the order service.
type OrderServiceDeps struct {
	Orders   repositories.OrderRepository
	Couriers repositories.CourierRepository
	Clock    func() time.Time
	Logger   func(context.Context, string, map[string]any)
}

type orderService struct {
	orders   repositories.OrderRepository
	couriers repositories.CourierRepository
	clock    func() time.Time
	logger   func(context.Context, string, map[string]any)
}

// NewOrderService constructs the order service with the supplied dependencies.
func NewOrderService(deps OrderServiceDeps) (OrderService, error) {
	if deps.Orders == nil {
		return nil, fmt.Errorf("order service: order repository is required")
	}
	if deps.Couriers == nil {
		return nil, fmt.Errorf("order service: courier repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &orderService{
		orders:   deps.Orders,
		couriers: deps.Couriers,
		clock:    func() time.Time { return clock().UTC() },
		logger:   logger,
	}, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter OrderListFilter) (domain.CursorPage[Order], error) {
	sessionID := strings.TrimSpace(filter.SessionID)
	if sessionID == "" {
		return domain.CursorPage[Order]{}, fmt.Errorf("%w: session id is required", ErrOrderInvalidInput)
	}

	cursor, err := pagination.DecodeToken(strings.TrimSpace(filter.Pager.PageToken))
	if err != nil {
		return domain.CursorPage[Order]{}, fmt.Errorf("%w: %s", ErrOrderInvalidInput, err.Error())
	}

	page, err := s.orders.ListBySession(ctx, sessionID, repositories.OrderListFilter{
		Pager:   domain.Pagination{PageSize: filter.Pager.PageSize},
		AfterID: cursor.LastID,
	})
	if err != nil {
		return domain.CursorPage[Order]{}, s.translateRepoError(err)
	}

	// The repository reports the raw last identifier; callers get it as an
	// opaque token.
	if page.NextPageToken != "" {
		token, err := pagination.EncodeToken(pagination.Cursor{LastID: page.NextPageToken})
		if err != nil {
			return domain.CursorPage[Order]{}, fmt.Errorf("%w: %s", ErrOrderUnavailable, err.Error())
		}
		page.NextPageToken = token
	}
	return page, nil
}

func (s *orderService) GetOrder(ctx context.Context, cmd GetOrderCommand) (Order, error) {
	return s.loadOwnedOrder(ctx, cmd.SessionID, cmd.OrderID)
}

// TransitionStatus moves an order one step forward in the delivery pipeline,
// or cancels it. Cancellation is only possible before the order is delivered.
func (s *orderService) TransitionStatus(ctx context.Context, cmd OrderStatusTransitionCommand) (Order, error) {
	orderID := strings.TrimSpace(cmd.OrderID)
	if orderID == "" {
		return Order{}, fmt.Errorf("%w: order id is required", ErrOrderInvalidInput)
	}

	var order Order
	var err error
	if sessionID := strings.TrimSpace(cmd.SessionID); sessionID != "" {
		order, err = s.loadOwnedOrder(ctx, sessionID, orderID)
	} else {
		order, err = s.loadOrder(ctx, orderID)
	}
	if err != nil {
		return Order{}, err
	}

	now := s.clock()
	switch {
	case cmd.Status == domain.OrderStatusCancelled:
		if order.Status.Terminal() {
			return Order{}, fmt.Errorf("%w: order is already %s", ErrOrderInvalidTransition, order.Status)
		}
		order.Status = domain.OrderStatusCancelled
		order.CancelledAt = &now
	case cmd.Status.StepIndex() == order.Status.StepIndex()+1 && order.Status.StepIndex() >= 0:
		order.Status = cmd.Status
		if cmd.Status == domain.OrderStatusDelivered {
			order.DeliveredAt = &now
		}
	default:
		return Order{}, fmt.Errorf("%w: cannot move from %s to %s", ErrOrderInvalidTransition, order.Status, cmd.Status)
	}

	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return Order{}, s.translateRepoError(err)
	}
	s.logger(ctx, "order status changed", map[string]any{
		"order_id": updated.ID,
		"status":   string(updated.Status),
	})
	return updated, nil
}

func (s *orderService) AssignCourier(ctx context.Context, cmd AssignCourierCommand) (Order, error) {
	courierID := strings.TrimSpace(cmd.CourierID)
	if courierID == "" {
		return Order{}, fmt.Errorf("%w: courier id is required", ErrOrderInvalidInput)
	}

	order, err := s.loadOwnedOrder(ctx, cmd.SessionID, cmd.OrderID)
	if err != nil {
		return Order{}, err
	}
	if order.Status.Terminal() {
		return Order{}, fmt.Errorf("%w: order is already %s", ErrOrderInvalidTransition, order.Status)
	}

	courier, err := s.couriers.FindByID(ctx, courierID)
	if err != nil {
		if isRepoNotFound(err) {
			return Order{}, fmt.Errorf("%w: unknown courier %s", ErrOrderInvalidInput, courierID)
		}
		return Order{}, s.translateRepoError(err)
	}

	order.Courier = &courier
	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return Order{}, s.translateRepoError(err)
	}
	return updated, nil
}

func (s *orderService) loadOwnedOrder(ctx context.Context, sessionID, orderID string) (Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Order{}, fmt.Errorf("%w: session id is required", ErrOrderInvalidInput)
	}
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	// Ownership misses read as not found so order identifiers do not leak
	// across sessions.
	if order.SessionID != sessionID {
		return Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return order, nil
}

func (s *orderService) loadOrder(ctx context.Context, orderID string) (Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return Order{}, fmt.Errorf("%w: order id is required", ErrOrderInvalidInput)
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return Order{}, s.translateRepoError(err)
	}
	return order, nil
}

func (s *orderService) translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case isRepoNotFound(err):
		return fmt.Errorf("%w: %s", ErrOrderNotFound, err.Error())
	case isRepoConflict(err), isRepoUnavailable(err):
		return fmt.Errorf("%w: %s", ErrOrderUnavailable, err.Error())
	default:
		return err
	}
}
