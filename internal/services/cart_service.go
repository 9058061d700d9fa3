package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/repositories"
)

const defaultMaxLineQuantity = 99

var (
	// ErrCartInvalidInput indicates the caller supplied invalid data to a cart mutation.
	ErrCartInvalidInput = errors.New("cart service: invalid input")
	// ErrCartProductNotFound indicates the referenced product does not exist.
	ErrCartProductNotFound = errors.New("cart service: product not found")
	// ErrCartProductOutOfStock indicates the product cannot currently be added.
	ErrCartProductOutOfStock = errors.New("cart service: product out of stock")
	// ErrCartSupermarketMismatch indicates the cart already holds items from another storefront.
	ErrCartSupermarketMismatch = errors.New("cart service: cart belongs to another supermarket")
	// ErrCartUnavailable indicates cart storage failed to answer.
	ErrCartUnavailable = errors.New("cart service: cart storage unavailable")
)

// CartServiceDeps bundles constructor inputs for the cart service.
type CartServiceDeps struct {
	Carts    repositories.CartRepository
	Products repositories.ProductRepository
	Pricer   CartPricer
	// MaxLineQuantity caps a single line; zero applies the default cap.
	MaxLineQuantity int
	Clock           func() time.Time
	Logger          func(context.Context, string, map[string]any)
}

type cartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	pricer   CartPricer
	maxQty   int
	clock    func() time.Time
	logger   func(context.Context, string, map[string]any)
}

// NewCartService constructs the cart service with the supplied dependencies.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Carts == nil {
		return nil, fmt.Errorf("cart service: cart repository is required")
	}
	if deps.Products == nil {
		return nil, fmt.Errorf("cart service: product repository is required")
	}
	if deps.Pricer == nil {
		return nil, fmt.Errorf("cart service: pricer is required")
	}
	maxQty := deps.MaxLineQuantity
	if maxQty <= 0 {
		maxQty = defaultMaxLineQuantity
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &cartService{
		carts:    deps.Carts,
		products: deps.Products,
		pricer:   deps.Pricer,
		maxQty:   maxQty,
		clock:    func() time.Time { return clock().UTC() },
		logger:   logger,
	}, nil
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (PricedCart, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return PricedCart{}, fmt.Errorf("%w: session id is required", ErrCartInvalidInput)
	}
	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return PricedCart{}, err
	}
	return s.price(ctx, cart)
}

func (s *cartService) SetQuantity(ctx context.Context, cmd SetQuantityCommand) (PricedCart, error) {
	sessionID := strings.TrimSpace(cmd.SessionID)
	productID := strings.TrimSpace(cmd.ProductID)
	switch {
	case sessionID == "":
		return PricedCart{}, fmt.Errorf("%w: session id is required", ErrCartInvalidInput)
	case productID == "":
		return PricedCart{}, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	case cmd.Quantity < 0:
		return PricedCart{}, fmt.Errorf("%w: quantity must not be negative", ErrCartInvalidInput)
	case cmd.Quantity > s.maxQty:
		return PricedCart{}, fmt.Errorf("%w: quantity exceeds the per-line limit of %d", ErrCartInvalidInput, s.maxQty)
	}

	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return PricedCart{}, err
	}

	if cmd.Quantity == 0 {
		cart = removeCartLine(cart, productID)
		return s.persist(ctx, cart)
	}

	cart, err = s.applyQuantity(ctx, cart, productID, cmd.Quantity, cmd.Replace)
	if err != nil {
		return PricedCart{}, err
	}
	return s.persist(ctx, cart)
}

func (s *cartService) Increment(ctx context.Context, cmd AdjustQuantityCommand) (PricedCart, error) {
	sessionID := strings.TrimSpace(cmd.SessionID)
	productID := strings.TrimSpace(cmd.ProductID)
	if sessionID == "" || productID == "" {
		return PricedCart{}, fmt.Errorf("%w: session id and product id are required", ErrCartInvalidInput)
	}

	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return PricedCart{}, err
	}

	quantity := 1
	if line, ok := findCartLine(cart, productID); ok {
		quantity = line.Quantity + 1
		if quantity > s.maxQty {
			quantity = s.maxQty
		}
	}
	cart, err = s.applyQuantity(ctx, cart, productID, quantity, cmd.Replace)
	if err != nil {
		return PricedCart{}, err
	}
	return s.persist(ctx, cart)
}

func (s *cartService) Decrement(ctx context.Context, cmd AdjustQuantityCommand) (PricedCart, error) {
	sessionID := strings.TrimSpace(cmd.SessionID)
	productID := strings.TrimSpace(cmd.ProductID)
	if sessionID == "" || productID == "" {
		return PricedCart{}, fmt.Errorf("%w: session id and product id are required", ErrCartInvalidInput)
	}

	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return PricedCart{}, err
	}

	line, ok := findCartLine(cart, productID)
	if !ok || line.Quantity <= 1 {
		cart = removeCartLine(cart, productID)
		return s.persist(ctx, cart)
	}
	cart, err = s.applyQuantity(ctx, cart, productID, line.Quantity-1, false)
	if err != nil {
		return PricedCart{}, err
	}
	return s.persist(ctx, cart)
}

func (s *cartService) RemoveLine(ctx context.Context, cmd RemoveLineCommand) (PricedCart, error) {
	sessionID := strings.TrimSpace(cmd.SessionID)
	productID := strings.TrimSpace(cmd.ProductID)
	if sessionID == "" || productID == "" {
		return PricedCart{}, fmt.Errorf("%w: session id and product id are required", ErrCartInvalidInput)
	}

	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return PricedCart{}, err
	}
	cart = removeCartLine(cart, productID)
	return s.persist(ctx, cart)
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", ErrCartInvalidInput)
	}
	if err := s.carts.DeleteCart(ctx, sessionID); err != nil {
		return s.translateRepoError(err)
	}
	return nil
}

// applyQuantity looks up the product and writes the absolute quantity onto
// the matching line, creating it if needed. The cart stays scoped to one
// supermarket; replace clears foreign contents instead of failing.
func (s *cartService) applyQuantity(ctx context.Context, cart Cart, productID string, quantity int, replace bool) (Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if isRepoNotFound(err) {
			return Cart{}, fmt.Errorf("%w: %s", ErrCartProductNotFound, productID)
		}
		return Cart{}, s.translateRepoError(err)
	}
	if !product.InStock {
		return Cart{}, fmt.Errorf("%w: %s", ErrCartProductOutOfStock, productID)
	}

	if cart.SupermarketID != "" && cart.SupermarketID != product.SupermarketID {
		if !replace {
			return Cart{}, fmt.Errorf("%w: cart holds items from supermarket %s", ErrCartSupermarketMismatch, cart.SupermarketID)
		}
		cart.Lines = nil
		cart.SupermarketID = ""
	}
	cart.SupermarketID = product.SupermarketID

	if quantity > s.maxQty {
		quantity = s.maxQty
	}

	now := s.clock()
	for i := range cart.Lines {
		if cart.Lines[i].Product.ID == productID {
			cart.Lines[i].Product = product
			cart.Lines[i].Quantity = quantity
			return cart, nil
		}
	}
	cart.Lines = append(cart.Lines, domain.CartLine{
		Product:  product,
		Quantity: quantity,
		AddedAt:  now,
	})
	return cart, nil
}

func (s *cartService) loadCart(ctx context.Context, sessionID string) (Cart, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		if isRepoNotFound(err) {
			now := s.clock()
			return Cart{SessionID: sessionID, CreatedAt: now, UpdatedAt: now}, nil
		}
		return Cart{}, s.translateRepoError(err)
	}
	return cart, nil
}

func (s *cartService) persist(ctx context.Context, cart Cart) (PricedCart, error) {
	if cart.Empty() {
		cart.Lines = nil
		cart.SupermarketID = ""
	}
	cart.UpdatedAt = s.clock()
	saved, err := s.carts.SaveCart(ctx, cart)
	if err != nil {
		return PricedCart{}, s.translateRepoError(err)
	}
	return s.price(ctx, saved)
}

func (s *cartService) price(ctx context.Context, cart Cart) (PricedCart, error) {
	totals, err := s.pricer.Calculate(ctx, PriceCartCommand{Cart: cart})
	if err != nil {
		return PricedCart{}, err
	}
	return PricedCart{Cart: cart, Totals: totals}, nil
}

func (s *cartService) translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case isRepoNotFound(err):
		return fmt.Errorf("%w: %s", ErrCartProductNotFound, err.Error())
	case isRepoConflict(err), isRepoUnavailable(err):
		return fmt.Errorf("%w: %s", ErrCartUnavailable, err.Error())
	default:
		return err
	}
}

func findCartLine(cart Cart, productID string) (CartLine, bool) {
	for _, line := range cart.Lines {
		if line.Product.ID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}

func removeCartLine(cart Cart, productID string) Cart {
	lines := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.Product.ID != productID {
			lines = append(lines, line)
		}
	}
	cart.Lines = lines
	return cart
}
