package memory

import (
	"context"
	"strings"
	"sync"

	domain "github.com/freshcart/api/internal/domain"
)

// CartRepository stores per-session carts in memory.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

// NewCartRepository constructs an empty cart store.
func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]domain.Cart)}
}

// GetCart returns the cart for the session. Missing carts surface a not-found
// repository error; the service layer lazily creates empty carts.
func (r *CartRepository) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.Cart{}, conflictError("memory: get cart", "session id required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[sessionID]
	if !ok {
		return domain.Cart{}, notFoundError("memory: get cart", "cart not found")
	}
	return cloneCart(cart), nil
}

// SaveCart stores the cart keyed by its session.
func (r *CartRepository) SaveCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}

	if strings.TrimSpace(cart.SessionID) == "" {
		return domain.Cart{}, conflictError("memory: save cart", "session id required")
	}

	stored := cloneCart(cart)

	r.mu.Lock()
	r.carts[stored.SessionID] = stored
	r.mu.Unlock()

	return cloneCart(stored), nil
}

// DeleteCart removes the session's cart. Deleting an absent cart is a no-op.
func (r *CartRepository) DeleteCart(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return conflictError("memory: delete cart", "session id required")
	}

	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()

	return nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	out := cart
	if len(cart.Lines) > 0 {
		out.Lines = make([]domain.CartLine, len(cart.Lines))
		copy(out.Lines, cart.Lines)
	} else {
		out.Lines = nil
	}
	return out
}
