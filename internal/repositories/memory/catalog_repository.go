package memory

import (
	"context"
	"strings"
	"sync"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/repositories"
)

// SupermarketRepository serves the static storefront roster from memory.
type SupermarketRepository struct {
	mu      sync.RWMutex
	records map[string]domain.Supermarket
	order   []string
}

// NewSupermarketRepository indexes the provided roster for lookups. The input
// slice is copied so callers cannot mutate stored records.
func NewSupermarketRepository(records []domain.Supermarket) *SupermarketRepository {
	repo := &SupermarketRepository{
		records: make(map[string]domain.Supermarket, len(records)),
		order:   make([]string, 0, len(records)),
	}
	for _, record := range records {
		if record.ID == "" {
			continue
		}
		if _, exists := repo.records[record.ID]; !exists {
			repo.order = append(repo.order, record.ID)
		}
		repo.records[record.ID] = cloneSupermarket(record)
	}
	return repo
}

// FindByID returns the supermarket with the given identifier.
func (r *SupermarketRepository) FindByID(ctx context.Context, supermarketID string) (domain.Supermarket, error) {
	if err := ctx.Err(); err != nil {
		return domain.Supermarket{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[strings.TrimSpace(supermarketID)]
	if !ok {
		return domain.Supermarket{}, notFoundError("memory: find supermarket", "supermarket not found")
	}
	return cloneSupermarket(record), nil
}

// List returns supermarkets matching the filter in seed order.
func (r *SupermarketRepository) List(ctx context.Context, filter repositories.SupermarketFilter) ([]domain.Supermarket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(filter.Category)
	if strings.EqualFold(category, domain.CategoryAll) {
		category = ""
	}
	nameQuery := strings.ToLower(strings.TrimSpace(filter.NameQuery))

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Supermarket, 0, len(r.order))
	for _, id := range r.order {
		record := r.records[id]
		if category != "" && !hasCategory(record.Categories, category) {
			continue
		}
		if nameQuery != "" && !strings.Contains(strings.ToLower(record.Name), nameQuery) {
			continue
		}
		out = append(out, cloneSupermarket(record))
	}
	return out, nil
}

// ProductRepository serves catalog items from memory.
type ProductRepository struct {
	mu            sync.RWMutex
	records       map[string]domain.Product
	bySupermarket map[string][]string
}

// NewProductRepository indexes the provided catalog by product and storefront.
func NewProductRepository(records []domain.Product) *ProductRepository {
	repo := &ProductRepository{
		records:       make(map[string]domain.Product, len(records)),
		bySupermarket: make(map[string][]string),
	}
	for _, record := range records {
		if record.ID == "" {
			continue
		}
		if _, exists := repo.records[record.ID]; !exists {
			repo.bySupermarket[record.SupermarketID] = append(repo.bySupermarket[record.SupermarketID], record.ID)
		}
		repo.records[record.ID] = record
	}
	return repo
}

// FindByID returns the product with the given identifier.
func (r *ProductRepository) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[strings.TrimSpace(productID)]
	if !ok {
		return domain.Product{}, notFoundError("memory: find product", "product not found")
	}
	return record, nil
}

// ListBySupermarket returns the storefront's products matching the filter,
// in catalog order. An unknown supermarket yields an empty slice, not an
// error; ownership checks live in the service layer.
func (r *ProductRepository) ListBySupermarket(ctx context.Context, supermarketID string, filter repositories.ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(filter.Category)
	if strings.EqualFold(category, domain.CategoryAll) {
		category = ""
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySupermarket[strings.TrimSpace(supermarketID)]
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		record := r.records[id]
		if category != "" && !strings.EqualFold(record.Category, category) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func hasCategory(categories []string, category string) bool {
	for _, candidate := range categories {
		if strings.EqualFold(candidate, category) {
			return true
		}
	}
	return false
}

func cloneSupermarket(record domain.Supermarket) domain.Supermarket {
	out := record
	if len(record.Categories) > 0 {
		out.Categories = append([]string(nil), record.Categories...)
	}
	return out
}
