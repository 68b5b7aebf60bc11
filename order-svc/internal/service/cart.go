package service

import (
	"context"
	"errors"

	"harveys-cafe/order-svc/internal/cart"
	"harveys-cafe/order-svc/internal/domain"
)

// CartService applies the quantity guard to server-held carts. Each call is a
// load, mutate and save; concurrent writers to one cart are last-write-wins.
type CartService struct {
	carts CartStore
	menu  MenuRepository
	clock Clock
}

func NewCartService(carts CartStore, menu MenuRepository) *CartService {
	return &CartService{carts: carts, menu: menu, clock: SystemClock{}}
}

func (s *CartService) WithClock(clock Clock) *CartService {
	s.clock = clock
	return s
}

func (s *CartService) Get(ctx context.Context, cartID string) (*cart.Cart, error) {
	if cartID == "" {
		return nil, ErrEmptyCartID
	}
	return s.carts.Load(ctx, cartID)
}

func (s *CartService) AddItem(ctx context.Context, cartID string, item cart.Item, qty int) (*cart.Cart, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	available, err := s.availableFor(ctx, item.MenuItemID)
	if err != nil {
		return nil, err
	}
	if _, err := c.Add(item, qty, available, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cartID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) UpdateItem(ctx context.Context, cartID, lineID string, qty int) (*cart.Cart, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	line, ok := c.Line(lineID)
	if !ok {
		return nil, cart.ErrLineNotFound
	}

	var available *int
	if qty > 0 {
		if available, err = s.availableFor(ctx, line.MenuItemID); err != nil {
			return nil, err
		}
	}
	if err := c.UpdateQuantity(lineID, qty, available); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cartID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, lineID string) (*cart.Cart, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(lineID); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cartID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	if cartID == "" {
		return ErrEmptyCartID
	}
	return s.carts.Delete(ctx, cartID)
}

// availableFor reports the current remaining count of a stored menu item, or
// nil when the line is not backed by an inventory record.
func (s *CartService) availableFor(ctx context.Context, menuItemID string) (*int, error) {
	if domain.IsPlaceholderID(menuItemID) {
		return nil, nil
	}
	item, err := s.menu.GetMenuItem(ctx, menuItemID)
	if errors.Is(err, domain.ErrMenuItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	available := item.AvailableCount
	return &available, nil
}
