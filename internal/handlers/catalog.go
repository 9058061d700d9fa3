package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/platform/httpx"
	"github.com/freshcart/api/internal/services"
)

// CatalogHandlers exposes the public storefront and product endpoints.
type CatalogHandlers struct {
	catalog services.CatalogService
}

// NewCatalogHandlers constructs handlers backed by the catalog service.
func NewCatalogHandlers(catalog services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog}
}

// Routes wires the catalog endpoints onto the provided router.
func (h *CatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Route("/supermarkets", func(sr chi.Router) {
		sr.Get("/", h.listSupermarkets)
		sr.Get("/{supermarketID}", h.getSupermarket)
		sr.Get("/{supermarketID}/products", h.listProducts)
	})
	r.Get("/products/{productID}", h.getProduct)
}

func (h *CatalogHandlers) listSupermarkets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		writeCatalogUnavailable(ctx, w)
		return
	}

	query := r.URL.Query()
	markets, err := h.catalog.ListSupermarkets(ctx, services.SupermarketListFilter{
		Category:  strings.TrimSpace(query.Get("category")),
		NameQuery: strings.TrimSpace(query.Get("q")),
	})
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}

	payload := supermarketListResponse{Supermarkets: make([]supermarketPayload, 0, len(markets))}
	for _, market := range markets {
		payload.Supermarkets = append(payload.Supermarkets, buildSupermarketPayload(market))
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *CatalogHandlers) getSupermarket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		writeCatalogUnavailable(ctx, w)
		return
	}

	market, err := h.catalog.GetSupermarket(ctx, chi.URLParam(r, "supermarketID"))
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildSupermarketPayload(market))
}

func (h *CatalogHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		writeCatalogUnavailable(ctx, w)
		return
	}

	products, err := h.catalog.ListProducts(ctx, services.ListProductsCommand{
		SupermarketID: chi.URLParam(r, "supermarketID"),
		Category:      strings.TrimSpace(r.URL.Query().Get("category")),
	})
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}

	payload := productListResponse{Products: make([]productPayload, 0, len(products))}
	for _, product := range products {
		payload.Products = append(payload.Products, buildProductPayload(product))
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *CatalogHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		writeCatalogUnavailable(ctx, w)
		return
	}

	product, err := h.catalog.GetProduct(ctx, chi.URLParam(r, "productID"))
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildProductPayload(product))
}

func writeCatalogUnavailable(ctx context.Context, w http.ResponseWriter) {
	httpx.WriteError(ctx, w, httpx.NewError("catalog_service_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
}

func writeCatalogError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCatalogNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("catalog_not_found", "supermarket or product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrCatalogUnavailable):
		writeCatalogUnavailable(ctx, w)
	default:
		httpx.WriteError(ctx, w, httpx.NewError("catalog_error", "failed to read catalog", http.StatusInternalServerError))
	}
}

type supermarketListResponse struct {
	Supermarkets []supermarketPayload `json:"supermarkets"`
}

type supermarketPayload struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	ImageURL            string   `json:"image_url,omitempty"`
	Rating              float64  `json:"rating"`
	RatingCount         int      `json:"rating_count"`
	DistanceKm          float64  `json:"distance_km"`
	DeliveryTimeMinutes int      `json:"delivery_time_minutes"`
	HasDelivery         bool     `json:"has_delivery"`
	DeliveryFee         int64    `json:"delivery_fee"`
	Categories          []string `json:"categories"`
}

func buildSupermarketPayload(market domain.Supermarket) supermarketPayload {
	categories := market.Categories
	if categories == nil {
		categories = []string{}
	}
	return supermarketPayload{
		ID:                  market.ID,
		Name:                market.Name,
		ImageURL:            market.ImageURL,
		Rating:              market.Rating,
		RatingCount:         market.RatingCount,
		DistanceKm:          market.DistanceKm,
		DeliveryTimeMinutes: market.DeliveryTimeMinutes,
		HasDelivery:         market.HasDelivery,
		DeliveryFee:         market.DeliveryFee,
		Categories:          categories,
	}
}

type productListResponse struct {
	Products []productPayload `json:"products"`
}

type productPayload struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ImageURL        string `json:"image_url,omitempty"`
	Price           int64  `json:"price"`
	OriginalPrice   int64  `json:"original_price,omitempty"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
	Unit            string `json:"unit,omitempty"`
	Category        string `json:"category,omitempty"`
	SupermarketID   string `json:"supermarket_id"`
	Description     string `json:"description,omitempty"`
	InStock         bool   `json:"in_stock"`
}

func buildProductPayload(product domain.Product) productPayload {
	payload := productPayload{
		ID:            product.ID,
		Name:          product.Name,
		ImageURL:      product.ImageURL,
		Price:         product.Price,
		Unit:          product.Unit,
		Category:      product.Category,
		SupermarketID: product.SupermarketID,
		Description:   product.Description,
		InStock:       product.InStock,
	}
	if product.Discounted() {
		payload.OriginalPrice = product.OriginalPrice
		payload.DiscountPercent = product.DiscountPercent()
	}
	return payload
}
