package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/repositories"
)

// OrderRepository stores checkout snapshots in memory.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewOrderRepository constructs an empty order store.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]domain.Order)}
}

// Insert stores a new order. Reusing an identifier is a conflict.
func (r *OrderRepository) Insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	if strings.TrimSpace(order.ID) == "" {
		return domain.Order{}, conflictError("memory: insert order", "order id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return domain.Order{}, conflictError("memory: insert order", "order id already exists")
	}

	stored := cloneOrder(order)
	r.orders[order.ID] = stored
	return cloneOrder(stored), nil
}

// FindByID returns the order with the given identifier.
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[strings.TrimSpace(orderID)]
	if !ok {
		return domain.Order{}, notFoundError("memory: find order", "order not found")
	}
	return cloneOrder(order), nil
}

// Update replaces a stored order.
func (r *OrderRepository) Update(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; !exists {
		return domain.Order{}, notFoundError("memory: update order", "order not found")
	}

	stored := cloneOrder(order)
	r.orders[order.ID] = stored
	return cloneOrder(stored), nil
}

// ListBySession returns the session's orders newest first, resuming after the
// cursor when one is supplied. Order identifiers are ULIDs, so lexicographic
// order matches creation order.
func (r *OrderRepository) ListBySession(ctx context.Context, sessionID string, filter repositories.OrderListFilter) (domain.CursorPage[domain.Order], error) {
	if err := ctx.Err(); err != nil {
		return domain.CursorPage[domain.Order]{}, err
	}

	sessionID = strings.TrimSpace(sessionID)

	r.mu.RLock()
	matched := make([]domain.Order, 0)
	for _, order := range r.orders {
		if order.SessionID != sessionID {
			continue
		}
		matched = append(matched, cloneOrder(order))
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	start := 0
	if after := strings.TrimSpace(filter.AfterID); after != "" {
		for i, order := range matched {
			if order.ID == after {
				start = i + 1
				break
			}
			if order.ID < after {
				// Cursor order no longer exists; resume at the first
				// strictly older entry.
				start = i
				break
			}
			start = i + 1
		}
	}
	if start > len(matched) {
		start = len(matched)
	}
	matched = matched[start:]

	pageSize := filter.Pager.PageSize
	if pageSize <= 0 || pageSize > len(matched) {
		pageSize = len(matched)
	}

	page := domain.CursorPage[domain.Order]{Items: matched[:pageSize]}
	if pageSize < len(matched) && pageSize > 0 {
		page.NextPageToken = page.Items[pageSize-1].ID
	}
	return page, nil
}

func cloneOrder(order domain.Order) domain.Order {
	out := order
	if len(order.Lines) > 0 {
		out.Lines = make([]domain.OrderLine, len(order.Lines))
		copy(out.Lines, order.Lines)
	}
	if order.Courier != nil {
		courier := *order.Courier
		out.Courier = &courier
	}
	if order.CancelledAt != nil {
		ts := *order.CancelledAt
		out.CancelledAt = &ts
	}
	if order.DeliveredAt != nil {
		ts := *order.DeliveredAt
		out.DeliveredAt = &ts
	}
	return out
}
