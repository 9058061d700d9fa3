package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/platform/httpx"
	"github.com/freshcart/api/internal/platform/pagination"
	"github.com/freshcart/api/internal/services"
)

// OrderHandlers exposes checkout, order history and delivery tracking.
type OrderHandlers struct {
	checkout services.CheckoutService
	orders   services.OrderService
	delivery services.DeliveryService
	pager    pagination.Options

	checkoutMiddlewares []func(http.Handler) http.Handler
	mutationMiddlewares []func(http.Handler) http.Handler
}

const maxOrderBodySize = 32 * 1024

// OrderHandlersDeps bundles constructor inputs for the order handlers.
type OrderHandlersDeps struct {
	Checkout services.CheckoutService
	Orders   services.OrderService
	Delivery services.DeliveryService
	Pager    pagination.Options

	// CheckoutMiddlewares guard order creation only; reads and the other
	// mutations are unaffected.
	CheckoutMiddlewares []func(http.Handler) http.Handler
	// MutationMiddlewares guard every mutating order route.
	MutationMiddlewares []func(http.Handler) http.Handler
}

// NewOrderHandlers constructs handlers backed by the checkout, order and delivery services.
func NewOrderHandlers(deps OrderHandlersDeps) *OrderHandlers {
	return &OrderHandlers{
		checkout:            deps.Checkout,
		orders:              deps.Orders,
		delivery:            deps.Delivery,
		pager:               deps.Pager,
		checkoutMiddlewares: deps.CheckoutMiddlewares,
		mutationMiddlewares: deps.MutationMiddlewares,
	}
}

// Routes wires the /orders endpoints onto the provided router.
func (h *OrderHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	mutating := r.With(h.mutationMiddlewares...)
	mutating.With(h.checkoutMiddlewares...).Post("/", h.createOrder)
	r.Get("/", h.listOrders)
	r.Get("/{orderID}", h.getOrder)
	r.Get("/{orderID}/delivery", h.trackDelivery)
	mutating.Post("/{orderID}/cancel", h.cancelOrder)
	mutating.Post("/{orderID}/courier", h.assignCourier)
}

// InternalRoutes wires dispatch-only endpoints onto the internal router group.
func (h *OrderHandlers) InternalRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/orders/{orderID}/status", h.transitionStatus)
}

type createOrderRequest struct {
	PaymentMethod   string         `json:"payment_method"`
	DeliveryAddress addressPayload `json:"delivery_address"`
	CustomDelivery  bool           `json:"custom_delivery"`
}

func (h *OrderHandlers) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.checkout == nil {
		writeOrderUnavailable(ctx, w)
		return
	}
	sessionID, ok := requireOrderSession(ctx, w, r)
	if !ok {
		return
	}

	body, err := readLimitedBody(r, maxOrderBodySize)
	if err != nil {
		writeCartBodyError(ctx, w, err)
		return
	}
	var req createOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	order, err := h.checkout.CreateOrder(ctx, services.CreateOrderCommand{
		SessionID:     sessionID,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		DeliveryAddress: domain.Address{
			Label:      req.DeliveryAddress.Label,
			Street:     req.DeliveryAddress.Street,
			City:       req.DeliveryAddress.City,
			PostalCode: req.DeliveryAddress.PostalCode,
		},
		CustomDelivery: req.CustomDelivery,
	})
	if err != nil {
		writeOrderError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, orderResponse{Order: buildOrderPayload(order)})
}

func (h *OrderHandlers) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		writeOrderUnavailable(ctx, w)
		return
	}
	sessionID, ok := requireOrderSession(ctx, w, r)
	if !ok {
		return
	}

	params, err := pagination.FromRequest(r, h.pager)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	page, err := h.orders.ListOrders(ctx, services.OrderListFilter{
		SessionID: sessionID,
		Pager: domain.Pagination{
			PageSize:  params.PageSize,
			PageToken: params.PageToken,
		},
	})
	if err != nil {
		writeOrderError(ctx, w, err)
		return
	}

	payload := orderListResponse{
		Orders:        make([]orderPayload, 0, len(page.Items)),
		NextPageToken: page.NextPageToken,
	}
	for _, order := range page.Items {
		payload.Orders = append(payload.Orders, buildOrderPayload(order))
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *OrderHandlers) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		writeOrderUnavailable(ctx, w)
		return
	}
	sessionID, ok := requireOrderSession(ctx, w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(ctx, services.GetOrderCommand{
		SessionID: sessionID,
		OrderID:   chi.URLParam(r, "orderID"),
	})
	if err != nil {
		writeOrderError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, orderResponse{Order: buildOrderPayload(order)})
}

func (h *OrderHandlers) trackDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.delivery == nil {
		writeOrderUnavailable(ctx, w)
		return
	}
	sessionID, ok := requireOrderSession(ctx, w, r)
	if !ok {
		return
	}

	status, err := h.delivery.TrackOrder(ctx, services.TrackOrderCommand{
		SessionID: sessionID,
		OrderID:   chi.URLParam(r, "orderID"),
	})
	if err != nil {
		writeOrderError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildDeliveryStatusPayload(status))
}

func (h *OrderHandlers) cancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		writeOrderUnavailable(ctx, w)
		return
	}
	sessionID, ok := requireOrderSession(ctx, w, r)
	if !ok {
		return
	}

	order, err := h.orders.TransitionStatus(ctx, services.OrderStatusTransitionCommand{
		OrderID:   chi.URLParam(r, "orderID"),
		SessionID: sessionID,
		Status:    domain.OrderStatusCancelled,
	})
	if err != nil {
		writeOrderError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, orderResponse{Order: buildOrderPayload(order)})
}

type assignCourierRequest struct {
	CourierID string `json:"courier_id"`
}

func (h *OrderHandlers) assignCourier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		writeOrderUnavailable(ctx, w)
		return
	}
	sessionID, ok := requireOrderSession(ctx, w, r)
	if !ok {
		return
	}

	body, err := readLimitedBody(r, maxOrderBodySize)
	if err != nil {
		writeCartBodyError(ctx, w, err)
		return
	}
	var req assignCourierRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	order, err := h.orders.AssignCourier(ctx, services.AssignCourierCommand{
		SessionID: sessionID,
		OrderID:   chi.URLParam(r, "orderID"),
		CourierID: req.CourierID,
	})
	if err != nil {
		writeOrderError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, orderResponse{Order: buildOrderPayload(order)})
}

type transitionStatusRequest struct {
	Status string `json:"status"`
}

// transitionStatus serves the dispatch simulation; it bypasses session
// ownership and may push any order forward.
func (h *OrderHandlers) transitionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		writeOrderUnavailable(ctx, w)
		return
	}

	body, err := readLimitedBody(r, maxOrderBodySize)
	if err != nil {
		writeCartBodyError(ctx, w, err)
		return
	}
	var req transitionStatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	order, err := h.orders.TransitionStatus(ctx, services.OrderStatusTransitionCommand{
		OrderID: chi.URLParam(r, "orderID"),
		Status:  domain.OrderStatus(req.Status),
	})
	if err != nil {
		writeOrderError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, orderResponse{Order: buildOrderPayload(order)})
}

func requireOrderSession(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := sessionFromRequest(r)
	if sessionID == "" {
		httpx.WriteError(ctx, w, httpx.NewError("session_required", "a session identifier is required", http.StatusBadRequest))
		return "", false
	}
	return sessionID, true
}

func writeOrderUnavailable(ctx context.Context, w http.ResponseWriter) {
	httpx.WriteError(ctx, w, httpx.NewError("order_service_unavailable", "order service is unavailable", http.StatusServiceUnavailable))
}

func writeOrderError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCheckoutEmptyCart):
		httpx.WriteError(ctx, w, httpx.NewError("cart_empty", "cart is empty", http.StatusConflict))
	case errors.Is(err, services.ErrCheckoutInvalidInput), errors.Is(err, services.ErrOrderInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrOrderNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("order_not_found", "order not found", http.StatusNotFound))
	case errors.Is(err, services.ErrOrderInvalidTransition):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_transition", err.Error(), http.StatusConflict))
	case errors.Is(err, services.ErrCheckoutUnavailable), errors.Is(err, services.ErrOrderUnavailable), errors.Is(err, services.ErrDeliveryUnavailable):
		writeOrderUnavailable(ctx, w)
	default:
		httpx.WriteError(ctx, w, httpx.NewError("order_error", "failed to process order request", http.StatusInternalServerError))
	}
}

type orderResponse struct {
	Order orderPayload `json:"order"`
}

type orderListResponse struct {
	Orders        []orderPayload `json:"orders"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

type addressPayload struct {
	Label      string `json:"label,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type orderLinePayload struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	UnitPrice     int64  `json:"unit_price"`
	OriginalPrice int64  `json:"original_price,omitempty"`
	Unit          string `json:"unit,omitempty"`
	Category      string `json:"category,omitempty"`
	Quantity      int    `json:"quantity"`
	LineTotal     int64  `json:"line_total"`
}

type orderPayload struct {
	ID                string             `json:"id"`
	SupermarketID     string             `json:"supermarket_id"`
	SupermarketName   string             `json:"supermarket_name"`
	Status            string             `json:"status"`
	Lines             []orderLinePayload `json:"lines"`
	Totals            cartTotalsPayload  `json:"totals"`
	PaymentMethod     string             `json:"payment_method"`
	DeliveryAddress   addressPayload     `json:"delivery_address"`
	CreatedAt         string             `json:"created_at"`
	EstimatedDelivery string             `json:"estimated_delivery"`
	Courier           *courierPayload    `json:"courier,omitempty"`
	CustomDelivery    bool               `json:"custom_delivery"`
	CancelledAt       string             `json:"cancelled_at,omitempty"`
	DeliveredAt       string             `json:"delivered_at,omitempty"`
}

func buildOrderPayload(order domain.Order) orderPayload {
	lines := make([]orderLinePayload, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLinePayload{
			ProductID:     line.ProductID,
			Name:          line.Name,
			UnitPrice:     line.UnitPrice,
			OriginalPrice: line.OriginalPrice,
			Unit:          line.Unit,
			Category:      line.Category,
			Quantity:      line.Quantity,
			LineTotal:     line.LineTotal,
		})
	}
	payload := orderPayload{
		ID:              order.ID,
		SupermarketID:   order.SupermarketID,
		SupermarketName: order.SupermarketName,
		Status:          string(order.Status),
		Lines:           lines,
		Totals:          buildCartTotalsPayload(order.Totals),
		PaymentMethod:   string(order.PaymentMethod),
		DeliveryAddress: addressPayload{
			Label:      order.DeliveryAddress.Label,
			Street:     order.DeliveryAddress.Street,
			City:       order.DeliveryAddress.City,
			PostalCode: order.DeliveryAddress.PostalCode,
		},
		CreatedAt:         formatTime(order.CreatedAt),
		EstimatedDelivery: formatTime(order.EstimatedDelivery),
		CustomDelivery:    order.CustomDelivery,
		CancelledAt:       formatTimePointer(order.CancelledAt),
		DeliveredAt:       formatTimePointer(order.DeliveredAt),
	}
	if order.Courier != nil {
		courier := buildCourierPayload(*order.Courier)
		payload.Courier = &courier
	}
	return payload
}

type deliveryStepPayload struct {
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

type deliveryStatusPayload struct {
	OrderID           string                `json:"order_id"`
	Status            string                `json:"status"`
	StepIndex         int                   `json:"step_index"`
	Steps             []deliveryStepPayload `json:"steps"`
	Cancelled         bool                  `json:"cancelled"`
	Late              bool                  `json:"late"`
	EstimatedDelivery string                `json:"estimated_delivery"`
	Courier           *courierPayload       `json:"courier,omitempty"`
}

func buildDeliveryStatusPayload(status services.DeliveryStatus) deliveryStatusPayload {
	steps := make([]deliveryStepPayload, 0, len(status.Steps))
	for _, step := range status.Steps {
		steps = append(steps, deliveryStepPayload{
			Status:    string(step.Status),
			Completed: step.Completed,
			Current:   step.Current,
		})
	}
	payload := deliveryStatusPayload{
		OrderID:           status.OrderID,
		Status:            string(status.Status),
		StepIndex:         status.StepIndex,
		Steps:             steps,
		Cancelled:         status.Cancelled,
		Late:              status.Late,
		EstimatedDelivery: formatTime(status.EstimatedDelivery),
	}
	if status.Courier != nil {
		courier := buildCourierPayload(*status.Courier)
		payload.Courier = &courier
	}
	return payload
}
