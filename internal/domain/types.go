package domain

import (
	"time"
)

// Pagination defines standard cursor-based paging inputs for list operations.
type Pagination struct {
	PageSize  int
	PageToken string
}

// CursorPage packages list results with an encoded next token.
type CursorPage[T any] struct {
	Items         []T
	NextPageToken string
}

// CategoryAll is the sentinel category that bypasses catalog filtering.
const CategoryAll = "all"

// Supermarket describes a storefront in the static catalog. Records are
// immutable after load; the catalog lives for the whole process.
type Supermarket struct {
	ID                  string
	Name                string
	ImageURL            string
	Rating              float64
	RatingCount         int
	DistanceKm          float64
	DeliveryTimeMinutes int
	HasDelivery         bool
	// DeliveryFee is in minor currency units and only meaningful when
	// HasDelivery is true.
	DeliveryFee int64
	Categories  []string
}

// Product is a catalog item owned by exactly one supermarket. Prices are in
// minor currency units.
type Product struct {
	ID            string
	Name          string
	ImageURL      string
	Price         int64
	OriginalPrice int64
	Unit          string
	Category      string
	SupermarketID string
	Description   string
	InStock       bool
}

// Discounted reports whether the product carries a strike-through price.
func (p Product) Discounted() bool {
	return p.OriginalPrice > p.Price && p.Price > 0
}

// DiscountPercent returns the rounded percentage saved against the original
// price, or 0 when the product is not discounted.
func (p Product) DiscountPercent() int {
	if !p.Discounted() {
		return 0
	}
	diff := p.OriginalPrice - p.Price
	return int((diff*100 + p.OriginalPrice/2) / p.OriginalPrice)
}

// CartLine stores a product snapshot plus the selected quantity. Stored lines
// always carry quantity >= 1; a quantity of zero means the line is absent.
type CartLine struct {
	Product  Product
	Quantity int
	AddedAt  time.Time
}

// LineTotal returns price x quantity for the line using the current
// (discounted) price.
func (l CartLine) LineTotal() int64 {
	if l.Quantity <= 0 {
		return 0
	}
	return l.Product.Price * int64(l.Quantity)
}

// Cart aggregates the mutable selection for one session. A cart is scoped to
// at most one supermarket at a time; SupermarketID is empty only while the
// cart has no lines.
type Cart struct {
	SessionID     string
	SupermarketID string
	Lines         []CartLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LineCount returns the sum of all line quantities (the cart badge number).
func (c Cart) LineCount() int {
	total := 0
	for _, line := range c.Lines {
		if line.Quantity > 0 {
			total += line.Quantity
		}
	}
	return total
}

// Empty reports whether the cart holds no line with a positive quantity.
func (c Cart) Empty() bool {
	return c.LineCount() == 0
}

// CartTotals summarizes money amounts computed for a cart, all in minor
// currency units.
type CartTotals struct {
	Subtotal    int64
	DeliveryFee int64
	Tax         int64
	GrandTotal  int64
}

// OrderStatus enumerates valid lifecycle states for orders.
type OrderStatus string

const (
	// OrderStatusConfirmed indicates checkout completed and the shop accepted the order.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusPreparing indicates the supermarket is picking and packing items.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusOutForDelivery indicates a courier is en route to the customer.
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	// OrderStatusDelivered indicates the order reached the customer.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is the terminal branch outside the linear pipeline.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// DeliveryPipeline is the fixed ordered progression an order moves through.
// Cancelled is deliberately not part of the pipeline.
var DeliveryPipeline = [4]OrderStatus{
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// StepIndex returns the position of the status within the delivery pipeline,
// or -1 for cancelled or unrecognised statuses.
func (s OrderStatus) StepIndex() int {
	for i, step := range DeliveryPipeline {
		if step == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether no further pipeline progress is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentMethod enumerates the accepted checkout payment options.
type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "credit-card"
	PaymentMethodDebitCard      PaymentMethod = "debit-card"
	PaymentMethodWallet         PaymentMethod = "wallet"
	PaymentMethodCashOnDelivery PaymentMethod = "cash-on-delivery"
)

// KnownPaymentMethod reports whether the value is part of the enumeration.
func KnownPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodWallet, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// Address is the delivery address snapshot attached to an order.
type Address struct {
	Label      string
	Street     string
	City       string
	PostalCode string
}

// Blank reports whether the address carries no usable destination.
func (a Address) Blank() bool {
	return a.Street == "" && a.City == "" && a.PostalCode == ""
}

// OrderLine mirrors a cart line at the time of checkout. The product fields
// are copied, never referenced, so later catalog or cart mutation cannot
// alter a placed order.
type OrderLine struct {
	ProductID     string
	Name          string
	UnitPrice     int64
	OriginalPrice int64
	Unit          string
	Category      string
	Quantity      int
	LineTotal     int64
}

// Order is the immutable record produced at checkout confirmation. Only the
// status and courier assignment change afterwards, driven by the dispatch
// simulation.
type Order struct {
	ID                string
	SessionID         string
	SupermarketID     string
	SupermarketName   string
	Lines             []OrderLine
	Status            OrderStatus
	Totals            CartTotals
	PaymentMethod     PaymentMethod
	DeliveryAddress   Address
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	Courier           *Courier
	CustomDelivery    bool
	CancelledAt       *time.Time
	DeliveredAt       *time.Time
}

// Late reports whether the order has slipped past its estimate and is still
// undelivered. Delivered and cancelled orders are never late.
func (o Order) Late(now time.Time) bool {
	if o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled {
		return false
	}
	return now.After(o.EstimatedDelivery)
}

// Courier is immutable reference data for a delivery partner.
type Courier struct {
	ID       string
	Name     string
	Phone    string
	Rating   float64
	Vehicle  string
	ImageURL string
}

const (
	// HealthStatusOK indicates all dependencies are healthy.
	HealthStatusOK = "ok"
	// HealthStatusDegraded indicates a dependency reported a non-fatal failure.
	HealthStatusDegraded = "degraded"
	// HealthStatusError indicates the service or a critical dependency is unavailable.
	HealthStatusError = "error"
)

// SystemHealthCheck describes the outcome of an individual dependency probe.
type SystemHealthCheck struct {
	Status    string
	Detail    string
	Error     string
	Latency   time.Duration
	CheckedAt time.Time
}

// SystemHealthReport aggregates dependency status for health endpoints.
type SystemHealthReport struct {
	Status      string
	Checks      map[string]SystemHealthCheck
	Version     string
	Environment string
	Uptime      time.Duration
	GeneratedAt time.Time
}
