package services

import (
	"context"
	"time"

	domain "github.com/freshcart/api/internal/domain"
)

// Type aliases expose domain models to the services package without reversing dependency direction.
type (
	Pagination         = domain.Pagination
	Supermarket        = domain.Supermarket
	Product            = domain.Product
	Cart               = domain.Cart
	CartLine           = domain.CartLine
	CartTotals         = domain.CartTotals
	Order              = domain.Order
	OrderLine          = domain.OrderLine
	OrderStatus        = domain.OrderStatus
	PaymentMethod      = domain.PaymentMethod
	Address            = domain.Address
	Courier            = domain.Courier
	SystemHealthReport = domain.SystemHealthReport
)

// CatalogService serves the read-only storefront and product catalog.
type CatalogService interface {
	GetSupermarket(ctx context.Context, supermarketID string) (Supermarket, error)
	ListSupermarkets(ctx context.Context, filter SupermarketListFilter) ([]Supermarket, error)
	ListProducts(ctx context.Context, cmd ListProductsCommand) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (Product, error)
}

// SupermarketListFilter narrows storefront listings. Filters compose with AND.
type SupermarketListFilter struct {
	Category  string
	NameQuery string
}

// ListProductsCommand scopes product listings to one storefront.
type ListProductsCommand struct {
	SupermarketID string
	Category      string
}

// PricedCart pairs cart contents with computed totals.
type PricedCart struct {
	Cart   Cart
	Totals CartTotals
}

// CartService manages per-session cart state, keeping every cart scoped to a
// single supermarket.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (PricedCart, error)
	SetQuantity(ctx context.Context, cmd SetQuantityCommand) (PricedCart, error)
	Increment(ctx context.Context, cmd AdjustQuantityCommand) (PricedCart, error)
	Decrement(ctx context.Context, cmd AdjustQuantityCommand) (PricedCart, error)
	RemoveLine(ctx context.Context, cmd RemoveLineCommand) (PricedCart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// SetQuantityCommand sets the absolute quantity for a product line. Quantity
// zero removes the line. Replace clears an existing cart from another
// supermarket instead of rejecting the mutation.
type SetQuantityCommand struct {
	SessionID string
	ProductID string
	Quantity  int
	Replace   bool
}

// AdjustQuantityCommand nudges a line quantity by one in either direction.
type AdjustQuantityCommand struct {
	SessionID string
	ProductID string
	Replace   bool
}

// RemoveLineCommand deletes a product line from the cart.
type RemoveLineCommand struct {
	SessionID string
	ProductID string
}

// CartPricer computes totals for cart contents.
type CartPricer interface {
	Calculate(ctx context.Context, cmd PriceCartCommand) (CartTotals, error)
}

// PriceCartCommand carries the inputs for a totals calculation.
type PriceCartCommand struct {
	Cart Cart
}

// CheckoutService converts a cart into a confirmed order snapshot.
type CheckoutService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (Order, error)
}

// CreateOrderCommand captures the checkout submission.
type CreateOrderCommand struct {
	SessionID       string
	PaymentMethod   PaymentMethod
	DeliveryAddress Address
	// CustomDelivery marks orders placed against a storefront without its
	// own delivery service; a courier is hired separately.
	CustomDelivery bool
}

// OrderService reads placed orders and drives their delivery lifecycle.
type OrderService interface {
	ListOrders(ctx context.Context, filter OrderListFilter) (domain.CursorPage[Order], error)
	GetOrder(ctx context.Context, cmd GetOrderCommand) (Order, error)
	TransitionStatus(ctx context.Context, cmd OrderStatusTransitionCommand) (Order, error)
	AssignCourier(ctx context.Context, cmd AssignCourierCommand) (Order, error)
}

// OrderListFilter scopes order listings to a session.
type OrderListFilter struct {
	SessionID string
	Pager     Pagination
}

// GetOrderCommand fetches one order, enforcing session ownership.
type GetOrderCommand struct {
	SessionID string
	OrderID   string
}

// OrderStatusTransitionCommand advances an order along the delivery pipeline
// or cancels it.
type OrderStatusTransitionCommand struct {
	OrderID string
	// SessionID is empty for internal dispatch transitions, which bypass
	// the ownership check.
	SessionID string
	Status    OrderStatus
}

// AssignCourierCommand attaches a courier to an order.
type AssignCourierCommand struct {
	SessionID string
	OrderID   string
	CourierID string
}

// DeliveryService projects order status onto the tracking timeline.
type DeliveryService interface {
	TrackOrder(ctx context.Context, cmd TrackOrderCommand) (DeliveryStatus, error)
	ListCouriers(ctx context.Context) ([]Courier, error)
}

// TrackOrderCommand fetches the delivery projection for one order.
type TrackOrderCommand struct {
	SessionID string
	OrderID   string
}

// DeliveryStep is one stop on the fixed delivery timeline.
type DeliveryStep struct {
	Status    OrderStatus
	Completed bool
	Current   bool
}

// DeliveryStatus is the projection rendered by order tracking screens.
type DeliveryStatus struct {
	OrderID           string
	Status            OrderStatus
	StepIndex         int
	Steps             []DeliveryStep
	Cancelled         bool
	Late              bool
	EstimatedDelivery time.Time
	Courier           *Courier
}

// SystemService exposes operational health lookups.
type SystemService interface {
	Health(ctx context.Context) (SystemHealthReport, error)
}
