package services

import (
	"context"
	"sort"

	domain "github.com/freshcart/api/internal/domain"
	"github.com/freshcart/api/internal/repositories"
)

type stubRepoError struct {
	msg         string
	notFound    bool
	conflict    bool
	unavailable bool
}

func (e *stubRepoError) Error() string       { return e.msg }
func (e *stubRepoError) IsNotFound() bool    { return e.notFound }
func (e *stubRepoError) IsConflict() bool    { return e.conflict }
func (e *stubRepoError) IsUnavailable() bool { return e.unavailable }

func repoNotFound(msg string) error    { return &stubRepoError{msg: msg, notFound: true} }
func repoUnavailable(msg string) error { return &stubRepoError{msg: msg, unavailable: true} }

type stubSupermarketRepo struct {
	markets map[string]domain.Supermarket
	err     error
}

func (s *stubSupermarketRepo) FindByID(_ context.Context, id string) (domain.Supermarket, error) {
	if s.err != nil {
		return domain.Supermarket{}, s.err
	}
	market, ok := s.markets[id]
	if !ok {
		return domain.Supermarket{}, repoNotFound("supermarket " + id)
	}
	return market, nil
}

func (s *stubSupermarketRepo) List(_ context.Context, filter repositories.SupermarketFilter) ([]domain.Supermarket, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Supermarket, 0, len(s.markets))
	for _, market := range s.markets {
		out = append(out, market)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubProductRepo struct {
	products map[string]domain.Product
	err      error
}

func (s *stubProductRepo) FindByID(_ context.Context, id string) (domain.Product, error) {
	if s.err != nil {
		return domain.Product{}, s.err
	}
	product, ok := s.products[id]
	if !ok {
		return domain.Product{}, repoNotFound("product " + id)
	}
	return product, nil
}

func (s *stubProductRepo) ListBySupermarket(_ context.Context, supermarketID string, filter repositories.ProductFilter) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Product
	for _, product := range s.products {
		if product.SupermarketID != supermarketID {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		out = append(out, product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubCartRepo struct {
	carts   map[string]domain.Cart
	saveErr error
	getErr  error
	deletes int
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: map[string]domain.Cart{}}
}

func (s *stubCartRepo) GetCart(_ context.Context, sessionID string) (domain.Cart, error) {
	if s.getErr != nil {
		return domain.Cart{}, s.getErr
	}
	cart, ok := s.carts[sessionID]
	if !ok {
		return domain.Cart{}, repoNotFound("cart " + sessionID)
	}
	return cart, nil
}

func (s *stubCartRepo) SaveCart(_ context.Context, cart domain.Cart) (domain.Cart, error) {
	if s.saveErr != nil {
		return domain.Cart{}, s.saveErr
	}
	s.carts[cart.SessionID] = cart
	return cart, nil
}

func (s *stubCartRepo) DeleteCart(_ context.Context, sessionID string) error {
	s.deletes++
	delete(s.carts, sessionID)
	return nil
}

type stubOrderRepo struct {
	orders    map[string]domain.Order
	inserted  []domain.Order
	insertErr error
	listPage  domain.CursorPage[domain.Order]
	listErr   error
	lastList  repositories.OrderListFilter
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]domain.Order{}}
}

func (s *stubOrderRepo) Insert(_ context.Context, order domain.Order) (domain.Order, error) {
	if s.insertErr != nil {
		return domain.Order{}, s.insertErr
	}
	s.orders[order.ID] = order
	s.inserted = append(s.inserted, order)
	return order, nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, orderID string) (domain.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, repoNotFound("order " + orderID)
	}
	return order, nil
}

func (s *stubOrderRepo) Update(_ context.Context, order domain.Order) (domain.Order, error) {
	if _, ok := s.orders[order.ID]; !ok {
		return domain.Order{}, repoNotFound("order " + order.ID)
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrderRepo) ListBySession(_ context.Context, sessionID string, filter repositories.OrderListFilter) (domain.CursorPage[domain.Order], error) {
	s.lastList = filter
	if s.listErr != nil {
		return domain.CursorPage[domain.Order]{}, s.listErr
	}
	return s.listPage, nil
}

type stubCourierRepo struct {
	couriers map[string]domain.Courier
	err      error
}

func (s *stubCourierRepo) FindByID(_ context.Context, courierID string) (domain.Courier, error) {
	if s.err != nil {
		return domain.Courier{}, s.err
	}
	courier, ok := s.couriers[courierID]
	if !ok {
		return domain.Courier{}, repoNotFound("courier " + courierID)
	}
	return courier, nil
}

func (s *stubCourierRepo) List(_ context.Context) ([]domain.Courier, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Courier, 0, len(s.couriers))
	for _, courier := range s.couriers {
		out = append(out, courier)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubPricer struct {
	totals   domain.CartTotals
	err      error
	lastCart domain.Cart
}

func (s *stubPricer) Calculate(_ context.Context, cmd PriceCartCommand) (domain.CartTotals, error) {
	s.lastCart = cmd.Cart
	if s.err != nil {
		return domain.CartTotals{}, s.err
	}
	return s.totals, nil
}
