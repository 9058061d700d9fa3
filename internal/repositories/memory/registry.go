package memory

import (
	"context"

	"github.com/freshcart/api/internal/repositories"
)

// Registry bundles the in-memory repositories behind the shared Registry interface.
type Registry struct {
	supermarkets *SupermarketRepository
	products     *ProductRepository
	carts        *CartRepository
	orders       *OrderRepository
	couriers     *CourierRepository
	health       repositories.HealthRepository
}

var _ repositories.Registry = (*Registry)(nil)

// NewRegistry wires the in-memory stores with the built-in seed data.
func NewRegistry() (*Registry, error) {
	reg := &Registry{
		supermarkets: NewSupermarketRepository(SeedSupermarkets()),
		products:     NewProductRepository(SeedProducts()),
		carts:        NewCartRepository(),
		orders:       NewOrderRepository(),
		couriers:     NewCourierRepository(SeedCouriers()),
	}

	checks := []repositories.DependencyCheck{
		{Name: "catalog", Check: func(ctx context.Context) error {
			_, err := reg.supermarkets.List(ctx, repositories.SupermarketFilter{})
			return err
		}},
		{Name: "couriers", Check: func(ctx context.Context) error {
			_, err := reg.couriers.List(ctx)
			return err
		}},
	}
	health, err := repositories.NewDependencyHealthRepository(checks)
	if err != nil {
		return nil, err
	}
	reg.health = health

	return reg, nil
}

// Close releases held resources. The in-memory stores have none.
func (r *Registry) Close(context.Context) error { return nil }

// Supermarkets returns the storefront repository.
func (r *Registry) Supermarkets() repositories.SupermarketRepository { return r.supermarkets }

// Products returns the catalog item repository.
func (r *Registry) Products() repositories.ProductRepository { return r.products }

// Carts returns the cart repository.
func (r *Registry) Carts() repositories.CartRepository { return r.carts }

// Orders returns the order repository.
func (r *Registry) Orders() repositories.OrderRepository { return r.orders }

// Couriers returns the courier repository.
func (r *Registry) Couriers() repositories.CourierRepository { return r.couriers }

// Health returns the dependency health repository.
func (r *Registry) Health() repositories.HealthRepository { return r.health }
