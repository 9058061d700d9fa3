package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/repositories"
)

func TestCartRepositoryRoundTrip(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	_, err := repo.GetCart(ctx, "session-1")
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not-found for fresh session, got %v", err)
	}

	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	cart := domain.Cart{
		SessionID:     "session-1",
		SupermarketID: "1",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "101", Price: 199}, Quantity: 2, AddedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := repo.SaveCart(ctx, cart)
	if err != nil {
		t.Fatalf("SaveCart returned error: %v", err)
	}
	if saved.LineCount() != 2 {
		t.Fatalf("expected line count 2, got %d", saved.LineCount())
	}

	loaded, err := repo.GetCart(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}
	if loaded.SupermarketID != "1" || len(loaded.Lines) != 1 {
		t.Fatalf("unexpected cart: %+v", loaded)
	}
}

func TestCartRepositorySaveCopiesLines(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	cart := domain.Cart{
		SessionID: "session-1",
		Lines: []domain.CartLine{
			{Product: domain.Product{ID: "101"}, Quantity: 1},
		},
	}
	if _, err := repo.SaveCart(ctx, cart); err != nil {
		t.Fatalf("SaveCart returned error: %v", err)
	}

	cart.Lines[0].Quantity = 99

	loaded, err := repo.GetCart(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}
	if loaded.Lines[0].Quantity != 1 {
		t.Fatal("mutating the caller's slice leaked into the store")
	}
}

func TestCartRepositoryDelete(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	if _, err := repo.SaveCart(ctx, domain.Cart{SessionID: "session-1"}); err != nil {
		t.Fatalf("SaveCart returned error: %v", err)
	}
	if err := repo.DeleteCart(ctx, "session-1"); err != nil {
		t.Fatalf("DeleteCart returned error: %v", err)
	}

	_, err := repo.GetCart(ctx, "session-1")
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not-found after delete, got %v", err)
	}

	if err := repo.DeleteCart(ctx, "session-1"); err != nil {
		t.Fatalf("expected deleting an absent cart to be a no-op, got %v", err)
	}
}

func TestCartRepositoryRequiresSession(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	_, err := repo.SaveCart(ctx, domain.Cart{})
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsConflict() {
		t.Fatalf("expected conflict for missing session, got %v", err)
	}
}
