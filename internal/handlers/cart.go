package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/platform/httpx"
	"github.com/freshcart/api/internal/services"
)

// CartHandlers exposes the session-scoped cart endpoints.
type CartHandlers struct {
	carts services.CartService
}

const maxCartBodySize = 16 * 1024

// NewCartHandlers constructs handlers backed by the cart service.
func NewCartHandlers(carts services.CartService) *CartHandlers {
	return &CartHandlers{carts: carts}
}

// Routes wires the /cart endpoints onto the provided router.
func (h *CartHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.getCart)
	r.Delete("/", h.clearCart)
	r.Put("/items/{productID}", h.setQuantity)
	r.Delete("/items/{productID}", h.removeLine)
	r.Post("/items/{productID}/increment", h.increment)
	r.Post("/items/{productID}/decrement", h.decrement)
}

func (h *CartHandlers) getCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.requireSession(ctx, w, r)
	if !ok {
		return
	}

	priced, err := h.carts.GetCart(ctx, sessionID)
	if err != nil {
		writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildCartResponse(priced))
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
	Replace  bool `json:"replace"`
}

func (h *CartHandlers) setQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.requireSession(ctx, w, r)
	if !ok {
		return
	}

	body, err := readLimitedBody(r, maxCartBodySize)
	if err != nil {
		writeCartBodyError(ctx, w, err)
		return
	}
	var req setQuantityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}
	if req.Quantity == nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "quantity is required", http.StatusBadRequest))
		return
	}

	priced, err := h.carts.SetQuantity(ctx, services.SetQuantityCommand{
		SessionID: sessionID,
		ProductID: chi.URLParam(r, "productID"),
		Quantity:  *req.Quantity,
		Replace:   req.Replace,
	})
	if err != nil {
		writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildCartResponse(priced))
}

func (h *CartHandlers) increment(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, true)
}

func (h *CartHandlers) decrement(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, false)
}

func (h *CartHandlers) adjust(w http.ResponseWriter, r *http.Request, up bool) {
	ctx := r.Context()
	sessionID, ok := h.requireSession(ctx, w, r)
	if !ok {
		return
	}

	cmd := services.AdjustQuantityCommand{
		SessionID: sessionID,
		ProductID: chi.URLParam(r, "productID"),
		Replace:   r.URL.Query().Get("replace") == "true",
	}

	var priced services.PricedCart
	var err error
	if up {
		priced, err = h.carts.Increment(ctx, cmd)
	} else {
		priced, err = h.carts.Decrement(ctx, cmd)
	}
	if err != nil {
		writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildCartResponse(priced))
}

func (h *CartHandlers) removeLine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.requireSession(ctx, w, r)
	if !ok {
		return
	}

	priced, err := h.carts.RemoveLine(ctx, services.RemoveLineCommand{
		SessionID: sessionID,
		ProductID: chi.URLParam(r, "productID"),
	})
	if err != nil {
		writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildCartResponse(priced))
}

func (h *CartHandlers) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.requireSession(ctx, w, r)
	if !ok {
		return
	}

	if err := h.carts.ClearCart(ctx, sessionID); err != nil {
		writeCartError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandlers) requireSession(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.carts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	sessionID := sessionFromRequest(r)
	if sessionID == "" {
		httpx.WriteError(ctx, w, httpx.NewError("session_required", "a session identifier is required", http.StatusBadRequest))
		return "", false
	}
	return sessionID, true
}

func writeCartBodyError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	}
}

func writeCartError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCartInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCartProductNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrCartProductOutOfStock):
		httpx.WriteError(ctx, w, httpx.NewError("product_out_of_stock", "product is out of stock", http.StatusConflict))
	case errors.Is(err, services.ErrCartSupermarketMismatch):
		httpx.WriteError(ctx, w, httpx.NewError("cart_supermarket_mismatch", "cart holds items from another supermarket; pass replace to start over", http.StatusConflict))
	case errors.Is(err, services.ErrCartPricingInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_cart_state", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCartUnavailable), errors.Is(err, services.ErrCartPricingUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("cart_error", "failed to process cart request", http.StatusInternalServerError))
	}
}

type cartResponse struct {
	Cart   cartPayload       `json:"cart"`
	Totals cartTotalsPayload `json:"totals"`
}

type cartPayload struct {
	SessionID     string            `json:"session_id"`
	SupermarketID string            `json:"supermarket_id,omitempty"`
	Lines         []cartLinePayload `json:"lines"`
	ItemCount     int               `json:"item_count"`
	UpdatedAt     string            `json:"updated_at,omitempty"`
}

type cartLinePayload struct {
	Product   productPayload `json:"product"`
	Quantity  int            `json:"quantity"`
	LineTotal int64          `json:"line_total"`
	AddedAt   string         `json:"added_at,omitempty"`
}

type cartTotalsPayload struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Tax         int64 `json:"tax"`
	GrandTotal  int64 `json:"grand_total"`
}

func buildCartResponse(priced services.PricedCart) cartResponse {
	return cartResponse{
		Cart:   buildCartPayload(priced.Cart),
		Totals: buildCartTotalsPayload(priced.Totals),
	}
}

func buildCartPayload(cart domain.Cart) cartPayload {
	lines := make([]cartLinePayload, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, cartLinePayload{
			Product:   buildProductPayload(line.Product),
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal(),
			AddedAt:   formatTime(line.AddedAt),
		})
	}
	return cartPayload{
		SessionID:     cart.SessionID,
		SupermarketID: cart.SupermarketID,
		Lines:         lines,
		ItemCount:     cart.LineCount(),
		UpdatedAt:     formatTime(cart.UpdatedAt),
	}
}

func buildCartTotalsPayload(totals domain.CartTotals) cartTotalsPayload {
	return cartTotalsPayload{
		Subtotal:    totals.Subtotal,
		DeliveryFee: totals.DeliveryFee,
		Tax:         totals.Tax,
		GrandTotal:  totals.GrandTotal,
	}
}
