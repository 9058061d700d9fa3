package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/repositories"
)

var (
	// ErrCatalogInvalidInput indicates the caller supplied unusable lookup parameters.
	ErrCatalogInvalidInput = errors.New("catalog service: invalid input")
	// ErrCatalogNotFound indicates the requested supermarket or product does not exist.
	ErrCatalogNotFound = errors.New("catalog service: not found")
	// ErrCatalogUnavailable indicates the catalog backend failed to answer.
	ErrCatalogUnavailable = errors.New("catalog service: catalog unavailable")
)

// CatalogServiceDeps bundles constructor inputs for the catalog service.
type CatalogServiceDeps struct {
	Supermarkets repositories.SupermarketRepository
	Products     repositories.ProductRepository
	Logger       func(context.Context, string, map[string]any)
}

type catalogService struct {
	supermarkets repositories.SupermarketRepository
	products     repositories.ProductRepository
	logger       func(context.Context, string, map[string]any)
}

// NewCatalogService constructs the catalog service with the supplied dependencies.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Supermarkets == nil {
		return nil, fmt.Errorf("catalog service: supermarket repository is required")
	}
	if deps.Products == nil {
		return nil, fmt.Errorf("catalog service: product repository is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &catalogService{
		supermarkets: deps.Supermarkets,
		products:     deps.Products,
		logger:       logger,
	}, nil
}

func (s *catalogService) GetSupermarket(ctx context.Context, supermarketID string) (Supermarket, error) {
	supermarketID = strings.TrimSpace(supermarketID)
	if supermarketID == "" {
		return Supermarket{}, fmt.Errorf("%w: supermarket id is required", ErrCatalogInvalidInput)
	}
	market, err := s.supermarkets.FindByID(ctx, supermarketID)
	if err != nil {
		return Supermarket{}, s.translateRepoError(err)
	}
	return market, nil
}

func (s *catalogService) ListSupermarkets(ctx context.Context, filter SupermarketListFilter) ([]Supermarket, error) {
	repoFilter := repositories.SupermarketFilter{
		Category:  normaliseCategory(filter.Category),
		NameQuery: strings.TrimSpace(filter.NameQuery),
	}
	markets, err := s.supermarkets.List(ctx, repoFilter)
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	return markets, nil
}

func (s *catalogService) ListProducts(ctx context.Context, cmd ListProductsCommand) ([]Product, error) {
	supermarketID := strings.TrimSpace(cmd.SupermarketID)
	if supermarketID == "" {
		return nil, fmt.Errorf("%w: supermarket id is required", ErrCatalogInvalidInput)
	}
	// Resolve the storefront first so an unknown id surfaces as not found
	// rather than an empty listing.
	if _, err := s.supermarkets.FindByID(ctx, supermarketID); err != nil {
		return nil, s.translateRepoError(err)
	}
	products, err := s.products.ListBySupermarket(ctx, supermarketID, repositories.ProductFilter{
		Category: normaliseCategory(cmd.Category),
	})
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Product{}, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return Product{}, s.translateRepoError(err)
	}
	return product, nil
}

func (s *catalogService) translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case isRepoNotFound(err):
		return fmt.Errorf("%w: %s", ErrCatalogNotFound, err.Error())
	case isRepoUnavailable(err):
		return fmt.Errorf("%w: %s", ErrCatalogUnavailable, err.Error())
	default:
		return err
	}
}

func normaliseCategory(category string) string {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, domain.CategoryAll) {
		return ""
	}
	return category
}
