package memory

import (
	"context"
	"strings"
	"sync"

	domain "github.com/freshcart/api/internal/domain"
)

// CourierRepository serves the delivery partner roster from memory.
type CourierRepository struct {
	mu      sync.RWMutex
	records map[string]domain.Courier
	order   []string
}

// NewCourierRepository indexes the provided roster for lookups.
func NewCourierRepository(records []domain.Courier) *CourierRepository {
	repo := &CourierRepository{
		records: make(map[string]domain.Courier, len(records)),
		order:   make([]string, 0, len(records)),
	}
	for _, record := range records {
		if record.ID == "" {
			continue
		}
		if _, exists := repo.records[record.ID]; !exists {
			repo.order = append(repo.order, record.ID)
		}
		repo.records[record.ID] = record
	}
	return repo
}

// FindByID returns the courier with the given identifier.
func (r *CourierRepository) FindByID(ctx context.Context, courierID string) (domain.Courier, error) {
	if err := ctx.Err(); err != nil {
		return domain.Courier{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[strings.TrimSpace(courierID)]
	if !ok {
		return domain.Courier{}, notFoundError("memory: find courier", "courier not found")
	}
	return record, nil
}

// List returns all couriers in seed order.
func (r *CourierRepository) List(ctx context.Context) ([]domain.Courier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Courier, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out, nil
}
