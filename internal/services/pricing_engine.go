package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/freshcart/api/internal/repositories"
)

var (
	// ErrCartPricingInvalidInput signals bad pricing inputs such as negative prices or quantities.
	ErrCartPricingInvalidInput = errors.New("cart pricing: invalid input")
	// ErrCartPricingUnavailable indicates a dependency needed for pricing could not be reached.
	ErrCartPricingUnavailable = errors.New("cart pricing: unavailable")
)

// CartPricingEngineDeps bundles constructor inputs for the pricing engine.
type CartPricingEngineDeps struct {
	Supermarkets repositories.SupermarketRepository
	// TaxRateBps is the sales tax rate in basis points (800 = 8%).
	TaxRateBps int64
	// DefaultDeliveryFee applies when the storefront has no delivery
	// service of its own, in minor currency units.
	DefaultDeliveryFee int64
	Logger             func(context.Context, string, map[string]any)
}

// CartPricingEngine derives cart totals from line items, the storefront's
// delivery fee and the configured tax rate.
type CartPricingEngine struct {
	supermarkets       repositories.SupermarketRepository
	taxRateBps         int64
	defaultDeliveryFee int64
	logger             func(context.Context, string, map[string]any)
}

// NewCartPricingEngine constructs the pricing engine with the supplied dependencies.
func NewCartPricingEngine(deps CartPricingEngineDeps) (*CartPricingEngine, error) {
	if deps.Supermarkets == nil {
		return nil, errors.New("cart pricing engine: supermarket repository is required")
	}
	if deps.TaxRateBps < 0 || deps.TaxRateBps > 10_000 {
		return nil, fmt.Errorf("cart pricing engine: tax rate %d out of range", deps.TaxRateBps)
	}
	if deps.DefaultDeliveryFee < 0 {
		return nil, errors.New("cart pricing engine: default delivery fee must not be negative")
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &CartPricingEngine{
		supermarkets:       deps.Supermarkets,
		taxRateBps:         deps.TaxRateBps,
		defaultDeliveryFee: deps.DefaultDeliveryFee,
		logger:             logger,
	}, nil
}

// Calculate totals the cart. An empty cart prices to all zeroes; the delivery
// fee only applies once the cart holds at least one line.
func (e *CartPricingEngine) Calculate(ctx context.Context, cmd PriceCartCommand) (CartTotals, error) {
	cart := cmd.Cart
	if cart.Empty() {
		return CartTotals{}, nil
	}

	var subtotal int64
	for _, line := range cart.Lines {
		if line.Quantity < 0 {
			return CartTotals{}, fmt.Errorf("%w: negative quantity for product %s", ErrCartPricingInvalidInput, line.Product.ID)
		}
		if line.Product.Price < 0 {
			return CartTotals{}, fmt.Errorf("%w: negative price for product %s", ErrCartPricingInvalidInput, line.Product.ID)
		}
		subtotal += line.LineTotal()
	}

	fee, err := e.deliveryFee(ctx, cart.SupermarketID)
	if err != nil {
		return CartTotals{}, err
	}
	tax := e.tax(subtotal)

	return CartTotals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		GrandTotal:  subtotal + fee + tax,
	}, nil
}

func (e *CartPricingEngine) deliveryFee(ctx context.Context, supermarketID string) (int64, error) {
	if supermarketID == "" {
		return e.defaultDeliveryFee, nil
	}
	market, err := e.supermarkets.FindByID(ctx, supermarketID)
	if err != nil {
		if isRepoNotFound(err) {
			return 0, fmt.Errorf("%w: unknown supermarket %s", ErrCartPricingInvalidInput, supermarketID)
		}
		return 0, fmt.Errorf("%w: %s", ErrCartPricingUnavailable, err.Error())
	}
	if !market.HasDelivery {
		return e.defaultDeliveryFee, nil
	}
	return market.DeliveryFee, nil
}

// tax applies the basis-point rate with half-up rounding.
func (e *CartPricingEngine) tax(subtotal int64) int64 {
	return (subtotal*e.taxRateBps + 5_000) / 10_000
}
