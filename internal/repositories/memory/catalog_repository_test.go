package memory

import (
	"context"
	"errors"
	"testing"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/repositories"
)

func TestSupermarketRepositoryFindByID(t *testing.T) {
	repo := NewSupermarketRepository(SeedSupermarkets())

	market, err := repo.FindByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if market.Name != "Fresh Market" {
		t.Fatalf("unexpected supermarket: %+v", market)
	}
	if market.DeliveryFee != 299 {
		t.Fatalf("expected delivery fee 299, got %d", market.DeliveryFee)
	}

	_, err = repo.FindByID(context.Background(), "missing")
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not-found repository error, got %v", err)
	}
}

func TestSupermarketRepositoryListFilters(t *testing.T) {
	repo := NewSupermarketRepository(SeedSupermarkets())
	ctx := context.Background()

	all, err := repo.List(ctx, repositories.SupermarketFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected all 5 supermarkets, got %d", len(all))
	}

	sentinel, err := repo.List(ctx, repositories.SupermarketFilter{Category: "all"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(sentinel) != len(all) {
		t.Fatalf("expected the all sentinel to match everything, got %d", len(sentinel))
	}

	dairy, err := repo.List(ctx, repositories.SupermarketFilter{Category: "Dairy"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(dairy) != 3 {
		t.Fatalf("expected 3 dairy supermarkets, got %d", len(dairy))
	}

	named, err := repo.List(ctx, repositories.SupermarketFilter{NameQuery: "mart"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(named) != 2 {
		t.Fatalf("expected 2 name matches for mart, got %d", len(named))
	}

	both, err := repo.List(ctx, repositories.SupermarketFilter{Category: "Snacks", NameQuery: "value"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(both) != 1 || both[0].Name != "ValueMart" {
		t.Fatalf("expected combined filters to yield ValueMart, got %+v", both)
	}

	none, err := repo.List(ctx, repositories.SupermarketFilter{NameQuery: "no such store"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty result, got %d", len(none))
	}
}

func TestSupermarketRepositoryListCopiesRecords(t *testing.T) {
	repo := NewSupermarketRepository(SeedSupermarkets())

	first, err := repo.List(context.Background(), repositories.SupermarketFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	first[0].Categories[0] = "Tampered"

	second, err := repo.List(context.Background(), repositories.SupermarketFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if second[0].Categories[0] == "Tampered" {
		t.Fatal("mutating a listed record leaked into the store")
	}
}

func TestProductRepositoryListBySupermarket(t *testing.T) {
	repo := NewProductRepository(SeedProducts())
	ctx := context.Background()

	freshMarket, err := repo.ListBySupermarket(ctx, "1", repositories.ProductFilter{})
	if err != nil {
		t.Fatalf("ListBySupermarket returned error: %v", err)
	}
	if len(freshMarket) != 4 {
		t.Fatalf("expected 4 products for supermarket 1, got %d", len(freshMarket))
	}

	meat, err := repo.ListBySupermarket(ctx, "1", repositories.ProductFilter{Category: "Meat"})
	if err != nil {
		t.Fatalf("ListBySupermarket returned error: %v", err)
	}
	if len(meat) != 1 || meat[0].Name != "Grass-fed Ground Beef" {
		t.Fatalf("unexpected meat products: %+v", meat)
	}

	sentinel, err := repo.ListBySupermarket(ctx, "1", repositories.ProductFilter{Category: "all"})
	if err != nil {
		t.Fatalf("ListBySupermarket returned error: %v", err)
	}
	if len(sentinel) != len(freshMarket) {
		t.Fatalf("expected the all sentinel to match everything, got %d", len(sentinel))
	}

	empty, err := repo.ListBySupermarket(ctx, "unknown", repositories.ProductFilter{})
	if err != nil {
		t.Fatalf("ListBySupermarket returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no products for unknown supermarket, got %d", len(empty))
	}
}

func TestProductRepositoryPreservesCatalogOrder(t *testing.T) {
	repo := NewProductRepository([]domain.Product{
		{ID: "9", Name: "Rye Bread", SupermarketID: "1", Category: "Bakery"},
		{ID: "10", Name: "Oat Milk", SupermarketID: "1", Category: "Dairy"},
		{ID: "2", Name: "Apples", SupermarketID: "1", Category: "Groceries"},
	})

	listed, err := repo.ListBySupermarket(context.Background(), "1", repositories.ProductFilter{})
	if err != nil {
		t.Fatalf("ListBySupermarket returned error: %v", err)
	}
	want := []string{"9", "10", "2"}
	if len(listed) != len(want) {
		t.Fatalf("expected %d products, got %d", len(want), len(listed))
	}
	for i, id := range want {
		if listed[i].ID != id {
			t.Fatalf("position %d: expected product %s, got %s", i, id, listed[i].ID)
		}
	}
}

func TestProductRepositoryFindByID(t *testing.T) {
	repo := NewProductRepository(SeedProducts())

	product, err := repo.FindByID(context.Background(), "303")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if product.Name != "Cheddar Cheese" || product.OriginalPrice != 499 {
		t.Fatalf("unexpected product: %+v", product)
	}

	_, err = repo.FindByID(context.Background(), "999")
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not-found repository error, got %v", err)
	}
}
