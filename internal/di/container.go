package di

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/freshcart/api/internal/platform/config"
	"github.com/freshcart/api/internal/repositories"
	"github.com/freshcart/api/internal/services"
)

// Services bundles the service-layer contracts that handlers rely upon. Concrete implementations
// are assembled via dependency injection in NewContainer.
type Services struct {
	Catalog  services.CatalogService
	Cart     services.CartService
	Checkout services.CheckoutService
	Orders   services.OrderService
	Delivery services.DeliveryService
	System   services.SystemService
}

// Container wires repositories and services for runtime use.
type Container struct {
	Config       config.Config
	Repositories repositories.Registry
	Services     Services
}

// NewContainer constructs the runtime dependencies. Production wiring provides the seeded
// in-memory registry, while tests can supply their own.
func NewContainer(ctx context.Context, cfg config.Config, reg repositories.Registry) (*Container, error) {
	if reg == nil {
		return nil, errors.New("repositories registry is required")
	}

	svc, err := buildServices(reg, cfg)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:       cfg,
		Repositories: reg,
		Services:     svc,
	}, nil
}

// Close releases resources held by the repository registry.
func (c *Container) Close(ctx context.Context) error {
	if c == nil || c.Repositories == nil {
		return nil
	}
	return c.Repositories.Close(ctx)
}

func buildServices(reg repositories.Registry, cfg config.Config) (Services, error) {
	var svc Services

	catalogSvc, err := services.NewCatalogService(services.CatalogServiceDeps{
		Supermarkets: reg.Supermarkets(),
		Products:     reg.Products(),
	})
	if err != nil {
		return Services{}, fmt.Errorf("build catalog service: %w", err)
	}
	svc.Catalog = catalogSvc

	pricer, err := services.NewCartPricingEngine(services.CartPricingEngineDeps{
		Supermarkets:       reg.Supermarkets(),
		TaxRateBps:         cfg.Pricing.TaxRateBps,
		DefaultDeliveryFee: cfg.Pricing.DefaultDeliveryFee,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build pricing engine: %w", err)
	}

	cartSvc, err := services.NewCartService(services.CartServiceDeps{
		Carts:           reg.Carts(),
		Products:        reg.Products(),
		Pricer:          pricer,
		MaxLineQuantity: cfg.Cart.MaxLineQuantity,
		Clock:           time.Now,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build cart service: %w", err)
	}
	svc.Cart = cartSvc

	checkoutSvc, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Carts:          reg.Carts(),
		Orders:         reg.Orders(),
		Supermarkets:   reg.Supermarkets(),
		Pricer:         pricer,
		EstimateOffset: cfg.Delivery.EstimateOffset,
		Clock:          time.Now,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build checkout service: %w", err)
	}
	svc.Checkout = checkoutSvc

	orderSvc, err := services.NewOrderService(services.OrderServiceDeps{
		Orders:   reg.Orders(),
		Couriers: reg.Couriers(),
		Clock:    time.Now,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build order service: %w", err)
	}
	svc.Orders = orderSvc

	deliverySvc, err := services.NewDeliveryService(services.DeliveryServiceDeps{
		Orders:   orderSvc,
		Couriers: reg.Couriers(),
		Clock:    time.Now,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build delivery service: %w", err)
	}
	svc.Delivery = deliverySvc

	systemSvc, err := services.NewSystemService(services.SystemServiceDeps{
		HealthRepository: reg.Health(),
		Clock:            time.Now,
		Build: services.BuildInfo{
			Version:     cfg.Server.Version,
			Environment: cfg.Server.Environment,
			StartedAt:   time.Now().UTC(),
		},
	})
	if err != nil {
		return Services{}, fmt.Errorf("build system service: %w", err)
	}
	svc.System = systemSvc

	return svc, nil
}

// Hostname reports the runtime host for log enrichment.
func Hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
