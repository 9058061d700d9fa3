package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/platform/httpx"
	"github.com/freshcart/api/internal/services"
)

// CourierHandlers exposes the delivery partner roster.
type CourierHandlers struct {
	delivery services.DeliveryService
}

// NewCourierHandlers constructs handlers backed by the delivery service.
func NewCourierHandlers(delivery services.DeliveryService) *CourierHandlers {
	return &CourierHandlers{delivery: delivery}
}

// Routes wires the /couriers endpoints onto the provided router.
func (h *CourierHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listCouriers)
}

func (h *CourierHandlers) listCouriers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.delivery == nil {
		httpx.WriteError(ctx, w, httpx.NewError("delivery_service_unavailable", "delivery service is unavailable", http.StatusServiceUnavailable))
		return
	}

	couriers, err := h.delivery.ListCouriers(ctx)
	if err != nil {
		if errors.Is(err, services.ErrDeliveryUnavailable) {
			httpx.WriteError(ctx, w, httpx.NewError("delivery_service_unavailable", "delivery service is unavailable", http.StatusServiceUnavailable))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("courier_error", "failed to list couriers", http.StatusInternalServerError))
		return
	}

	payload := courierListResponse{Couriers: make([]courierPayload, 0, len(couriers))}
	for _, courier := range couriers {
		payload.Couriers = append(payload.Couriers, buildCourierPayload(courier))
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

type courierListResponse struct {
	Couriers []courierPayload `json:"couriers"`
}

type courierPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone,omitempty"`
	Rating   float64 `json:"rating"`
	Vehicle  string  `json:"vehicle,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

func buildCourierPayload(courier domain.Courier) courierPayload {
	return courierPayload{
		ID:       courier.ID,
		Name:     courier.Name,
		Phone:    courier.Phone,
		Rating:   courier.Rating,
		Vehicle:  courier.Vehicle,
		ImageURL: courier.ImageURL,
	}
}
