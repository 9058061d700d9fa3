package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/repositories"
)

const defaultDeliveryEstimateOffset = 30 * time.Minute

var (
	// ErrCheckoutInvalidInput indicates the submission is missing required data.
	ErrCheckoutInvalidInput = errors.New("checkout service: invalid input")
	// ErrCheckoutEmptyCart indicates checkout was attempted with no cart contents.
	ErrCheckoutEmptyCart = errors.New("checkout service: cart is empty")
	// ErrCheckoutUnavailable indicates a storage dependency failed during checkout.
	ErrCheckoutUnavailable = errors.New("checkout service: unavailable")
)

// CheckoutServiceDeps bundles constructor inputs for the checkout service.
type CheckoutServiceDeps struct {
	Carts        repositories.CartRepository
	Orders       repositories.OrderRepository
	Supermarkets repositories.SupermarketRepository
	Pricer       CartPricer
	// EstimateOffset is the fallback delivery estimate when the storefront
	// does not advertise a delivery time.
	EstimateOffset time.Duration
	Clock          func() time.Time
	IDGenerator    func() string
	Logger         func(context.Context, string, map[string]any)
}

type checkoutService struct {
	carts          repositories.CartRepository
	orders         repositories.OrderRepository
	supermarkets   repositories.SupermarketRepository
	pricer         CartPricer
	estimateOffset time.Duration
	clock          func() time.Time
	newID          func() string
	logger         func(context.Context, string, map[string]any)
}

// NewCheckoutService constructs the checkout service with the supplied dependencies.
func NewCheckoutService(deps CheckoutServiceDeps) (CheckoutService, error) {
	if deps.Carts == nil {
		return nil, fmt.Errorf("checkout service: cart repository is required")
	}
	if deps.Orders == nil {
		return nil, fmt.Errorf("checkout service: order repository is required")
	}
	if deps.Supermarkets == nil {
		return nil, fmt.Errorf("checkout service: supermarket repository is required")
	}
	if deps.Pricer == nil {
		return nil, fmt.Errorf("checkout service: pricer is required")
	}
	offset := deps.EstimateOffset
	if offset <= 0 {
		offset = defaultDeliveryEstimateOffset
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.IDGenerator
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &checkoutService{
		carts:          deps.Carts,
		orders:         deps.Orders,
		supermarkets:   deps.Supermarkets,
		pricer:         deps.Pricer,
		estimateOffset: offset,
		clock:          func() time.Time { return clock().UTC() },
		newID:          newID,
		logger:         logger,
	}, nil
}

// CreateOrder freezes the cart into a confirmed order snapshot and clears the
// cart. Order lines copy product data so later catalog changes cannot reach
// into placed orders.
func (s *checkoutService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (Order, error) {
	sessionID := strings.TrimSpace(cmd.SessionID)
	if sessionID == "" {
		return Order{}, fmt.Errorf("%w: session id is required", ErrCheckoutInvalidInput)
	}
	if !domain.KnownPaymentMethod(cmd.PaymentMethod) {
		return Order{}, fmt.Errorf("%w: unknown payment method %q", ErrCheckoutInvalidInput, cmd.PaymentMethod)
	}
	if cmd.DeliveryAddress.Blank() {
		return Order{}, fmt.Errorf("%w: delivery address is required", ErrCheckoutInvalidInput)
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		if isRepoNotFound(err) {
			return Order{}, ErrCheckoutEmptyCart
		}
		return Order{}, fmt.Errorf("%w: %s", ErrCheckoutUnavailable, err.Error())
	}
	if cart.Empty() {
		return Order{}, ErrCheckoutEmptyCart
	}

	market, err := s.supermarkets.FindByID(ctx, cart.SupermarketID)
	if err != nil {
		if isRepoNotFound(err) {
			return Order{}, fmt.Errorf("%w: cart references unknown supermarket %s", ErrCheckoutInvalidInput, cart.SupermarketID)
		}
		return Order{}, fmt.Errorf("%w: %s", ErrCheckoutUnavailable, err.Error())
	}

	totals, err := s.pricer.Calculate(ctx, PriceCartCommand{Cart: cart})
	if err != nil {
		return Order{}, err
	}

	now := s.clock()
	order := domain.Order{
		ID:                s.newID(),
		SessionID:         sessionID,
		SupermarketID:     market.ID,
		SupermarketName:   market.Name,
		Lines:             snapshotLines(cart.Lines),
		Status:            domain.OrderStatusConfirmed,
		Totals:            totals,
		PaymentMethod:     cmd.PaymentMethod,
		DeliveryAddress:   cmd.DeliveryAddress,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(s.deliveryEstimate(market)),
		CustomDelivery:    cmd.CustomDelivery || !market.HasDelivery,
	}

	stored, err := s.orders.Insert(ctx, order)
	if err != nil {
		return Order{}, fmt.Errorf("%w: %s", ErrCheckoutUnavailable, err.Error())
	}

	if err := s.carts.DeleteCart(ctx, sessionID); err != nil && !isRepoNotFound(err) {
		// The order is already placed; a stale cart is recoverable.
		s.logger(ctx, "checkout cart cleanup failed", map[string]any{
			"order_id": stored.ID,
			"error":    err.Error(),
		})
	}

	s.logger(ctx, "order placed", map[string]any{
		"order_id":       stored.ID,
		"supermarket_id": stored.SupermarketID,
		"grand_total":    stored.Totals.GrandTotal,
	})
	return stored, nil
}

func (s *checkoutService) deliveryEstimate(market Supermarket) time.Duration {
	// Advertised minutes only apply to storefronts that deliver themselves;
	// custom-delivery orders fall back to the configured offset.
	if market.HasDelivery && market.DeliveryTimeMinutes > 0 {
		return time.Duration(market.DeliveryTimeMinutes) * time.Minute
	}
	return s.estimateOffset
}

func snapshotLines(lines []CartLine) []OrderLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		out = append(out, domain.OrderLine{
			ProductID:     line.Product.ID,
			Name:          line.Product.Name,
			UnitPrice:     line.Product.Price,
			OriginalPrice: line.Product.OriginalPrice,
			Unit:          line.Product.Unit,
			Category:      line.Product.Category,
			Quantity:      line.Quantity,
			LineTotal:     line.LineTotal(),
		})
	}
	return out
}
