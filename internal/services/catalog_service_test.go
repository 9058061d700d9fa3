package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/freshcart/api/internal/domain"
)

func newTestCatalogService(t *testing.T) CatalogService {
	t.Helper()
	svc, err := NewCatalogService(CatalogServiceDeps{
		Supermarkets: &stubSupermarketRepo{markets: map[string]domain.Supermarket{
			"1": {ID: "1", Name: "Fresh Market", Categories: []string{"Fruits", "Dairy"}},
			"2": {ID: "2", Name: "Gourmet Grocery", Categories: []string{"Bakery"}},
		}},
		Products: &stubProductRepo{products: map[string]domain.Product{
			"101": {ID: "101", Name: "Organic Bananas", Category: "Fruits", SupermarketID: "1", InStock: true},
			"102": {ID: "102", Name: "Whole Milk", Category: "Dairy", SupermarketID: "1", InStock: true},
			"201": {ID: "201", Name: "Artisan Bread", Category: "Bakery", SupermarketID: "2", InStock: true},
		}},
	})
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	return svc
}

func TestCatalogServiceGetSupermarket(t *testing.T) {
	svc := newTestCatalogService(t)

	market, err := svc.GetSupermarket(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetSupermarket: %v", err)
	}
	if market.Name != "Fresh Market" {
		t.Fatalf("expected Fresh Market, got %s", market.Name)
	}

	if _, err := svc.GetSupermarket(context.Background(), "999"); !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}
	if _, err := svc.GetSupermarket(context.Background(), "  "); !errors.Is(err, ErrCatalogInvalidInput) {
		t.Fatalf("expected ErrCatalogInvalidInput, got %v", err)
	}
}

func TestCatalogServiceListSupermarkets(t *testing.T) {
	svc := newTestCatalogService(t)

	markets, err := svc.ListSupermarkets(context.Background(), SupermarketListFilter{Category: "all"})
	if err != nil {
		t.Fatalf("ListSupermarkets: %v", err)
	}
	if len(markets) != 2 {
		t.Fatalf("expected 2 supermarkets, got %d", len(markets))
	}
}

func TestCatalogServiceListProducts(t *testing.T) {
	svc := newTestCatalogService(t)

	products, err := svc.ListProducts(context.Background(), ListProductsCommand{SupermarketID: "1"})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	products, err = svc.ListProducts(context.Background(), ListProductsCommand{SupermarketID: "1", Category: "Dairy"})
	if err != nil {
		t.Fatalf("ListProducts with category: %v", err)
	}
	if len(products) != 1 || products[0].ID != "102" {
		t.Fatalf("expected only product 102, got %+v", products)
	}
}

func TestCatalogServiceListProductsUnknownSupermarket(t *testing.T) {
	svc := newTestCatalogService(t)

	if _, err := svc.ListProducts(context.Background(), ListProductsCommand{SupermarketID: "999"}); !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}
}

func TestCatalogServiceGetProduct(t *testing.T) {
	svc := newTestCatalogService(t)

	product, err := svc.GetProduct(context.Background(), "201")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product.Name != "Artisan Bread" {
		t.Fatalf("expected Artisan Bread, got %s", product.Name)
	}

	if _, err := svc.GetProduct(context.Background(), "nope"); !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}
}

func TestCatalogServiceTranslatesUnavailable(t *testing.T) {
	svc, err := NewCatalogService(CatalogServiceDeps{
		Supermarkets: &stubSupermarketRepo{err: repoUnavailable("backend down")},
		Products:     &stubProductRepo{},
	})
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}

	if _, err := svc.GetSupermarket(context.Background(), "1"); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}
