package service

import (
	"context"

	"souqeats/internal/domain"
)

// CartService binds session carts in the cart store to the live catalog.
type CartService struct {
	store   CartStore
	catalog *CatalogService
}

func NewCartService(store CartStore, catalog *CatalogService) *CartService {
	return &CartService{store: store, catalog: catalog}
}

func (s *CartService) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.store.GetCart(ctx, sessionID)
}

// AddItem puts one unit of the dish in the session cart. An unknown dish
// id leaves the cart untouched.
func (s *CartService) AddItem(ctx context.Context, sessionID string, dishID int) (domain.Cart, error) {
	cart, err := s.store.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	dish, _, ok := s.catalog.FindDish(dishID)
	if !ok {
		return cart, nil
	}

	cart.Add(dish)
	if err := s.store.SaveCart(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// SetQuantity updates a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, sessionID string, dishID, quantity int) (domain.Cart, error) {
	cart, err := s.store.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.SetQuantity(dishID, quantity)
	if err := s.store.SaveCart(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.ClearCart(ctx, sessionID)
}
