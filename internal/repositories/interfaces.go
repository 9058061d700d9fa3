package repositories

import (
	"context"

	domain "github.com/freshcart/api/internal/domain"
)

// Registry exposes typed repository accessors and lifecycle hooks for dependency injection.
type Registry interface {
	Close(ctx context.Context) error

	Supermarkets() SupermarketRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Couriers() CourierRepository
	Health() HealthRepository
}

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// SupermarketFilter narrows supermarket listings. Zero values match everything.
type SupermarketFilter struct {
	// Category matches stores advertising the category. The "all" sentinel
	// and an empty string are both treated as no filter.
	Category string
	// NameQuery is a case-insensitive substring match on the store name.
	NameQuery string
}

// SupermarketRepository reads the static storefront catalog.
type SupermarketRepository interface {
	FindByID(ctx context.Context, supermarketID string) (domain.Supermarket, error)
	List(ctx context.Context, filter SupermarketFilter) ([]domain.Supermarket, error)
}

// ProductFilter narrows product listings within a supermarket.
type ProductFilter struct {
	Category string
}

// ProductRepository reads catalog items.
type ProductRepository interface {
	FindByID(ctx context.Context, productID string) (domain.Product, error)
	ListBySupermarket(ctx context.Context, supermarketID string, filter ProductFilter) ([]domain.Product, error)
}

// CartRepository owns per-session cart persistence.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (domain.Cart, error)
	SaveCart(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	DeleteCart(ctx context.Context, sessionID string) error
}

// OrderListFilter bounds session-scoped order listings.
type OrderListFilter struct {
	Pager domain.Pagination
	// AfterID resumes listing strictly after the given order identifier
	// in newest-first order.
	AfterID string
}

// OrderRepository persists checkout snapshots and their status transitions.
type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, orderID string) (domain.Order, error)
	Update(ctx context.Context, order domain.Order) (domain.Order, error)
	ListBySession(ctx context.Context, sessionID string, filter OrderListFilter) (domain.CursorPage[domain.Order], error)
}

// CourierRepository reads the delivery partner roster.
type CourierRepository interface {
	FindByID(ctx context.Context, courierID string) (domain.Courier, error)
	List(ctx context.Context) ([]domain.Courier, error)
}

// HealthRepository aggregates dependency probes for readiness reporting.
type HealthRepository interface {
	Collect(ctx context.Context) (domain.SystemHealthReport, error)
}
