package cart

import (
	"errors"
	"fmt"
	"time"

	"harveys-cafe/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	MaxPerItem    = 3
	MaxTotalItems = 20
)

var (
	ErrPerItemLimit    = errors.New("per-item limit reached")
	ErrCartLimit       = errors.New("cart limit reached")
	ErrOutOfStock      = errors.New("insufficient stock")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Violation is a rejected cart mutation. Message is shown to the customer as is.
type Violation struct {
	Err     error
	Message string
}

func (v *Violation) Error() string { return v.Message }

func (v *Violation) Unwrap() error { return v.Err }

func (v *Violation) Code() string {
	switch {
	case errors.Is(v.Err, ErrPerItemLimit):
		return "per_item_limit"
	case errors.Is(v.Err, ErrCartLimit):
		return "cart_limit"
	case errors.Is(v.Err, ErrOutOfStock):
		return "out_of_stock"
	}
	return "cart_violation"
}

type Item struct {
	ID           string `json:"id"`
	MenuItemID   string `json:"menu_item_id,omitempty"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	Category     string `json:"category"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	Type         string `json:"type,omitempty"`
	SelectedSize string `json:"selectedSize,omitempty"`
	Quantity     int    `json:"quantity"`
}

func (i Item) sameProduct(other Item) bool {
	return i.Name == other.Name && i.Price == other.Price && i.Category == other.Category
}

// OrderItem converts the line into the shape stored on an invoice.
func (i Item) OrderItem() domain.OrderItem {
	return domain.OrderItem{
		Name:         i.Name,
		Price:        i.Price,
		Quantity:     i.Quantity,
		SelectedSize: i.SelectedSize,
		Category:     i.Category,
		Image:        i.Image,
		MenuItemID:   i.MenuItemID,
	}
}

type Cart struct {
	Items []Item `json:"items"`
}

func New() *Cart {
	return &Cart{Items: []Item{}}
}

// Add merges qty units of item into the cart. available is the remaining stock
// for the item when known; nil skips the stock check. A rejected add leaves
// the cart untouched.
func (c *Cart) Add(item Item, qty int, available *int, now time.Time) (Item, error) {
	if qty < 1 {
		return Item{}, ErrInvalidQuantity
	}

	idx := c.find(item)
	current := 0
	if idx >= 0 {
		current = c.Items[idx].Quantity
	}

	if current+qty > MaxPerItem {
		return Item{}, &Violation{
			Err:     ErrPerItemLimit,
			Message: fmt.Sprintf("You can only add up to %d of the same item.", MaxPerItem),
		}
	}
	if c.Count()+qty > MaxTotalItems {
		return Item{}, &Violation{
			Err:     ErrCartLimit,
			Message: fmt.Sprintf("Maximum total limit reached (%d items).", MaxTotalItems),
		}
	}
	if available != nil {
		if qty > *available {
			return Item{}, &Violation{
				Err:     ErrOutOfStock,
				Message: fmt.Sprintf("Only %d items left in stock.", *available),
			}
		}
		if current+qty > *available {
			return Item{}, &Violation{
				Err:     ErrOutOfStock,
				Message: fmt.Sprintf("Sorry, only %d items available in total.", *available),
			}
		}
	}

	if idx >= 0 {
		c.Items[idx].Quantity += qty
		return c.Items[idx], nil
	}

	item.ID = fmt.Sprintf("%s-%s-%s-%d", item.Name, item.Price, item.Category, now.UnixNano())
	item.Quantity = qty
	c.Items = append(c.Items, item)
	return item, nil
}

// UpdateQuantity sets the quantity of a line; qty <= 0 removes it.
func (c *Cart) UpdateQuantity(id string, qty int, available *int) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrLineNotFound
	}
	if qty <= 0 {
		c.removeAt(idx)
		return nil
	}

	if qty > MaxPerItem {
		return &Violation{
			Err:     ErrPerItemLimit,
			Message: fmt.Sprintf("Maximum %d per item allowed.", MaxPerItem),
		}
	}
	others := c.Count() - c.Items[idx].Quantity
	if others+qty > MaxTotalItems {
		return &Violation{
			Err:     ErrCartLimit,
			Message: fmt.Sprintf("Total limit is %d items.", MaxTotalItems),
		}
	}
	if available != nil && qty > *available {
		return &Violation{
			Err:     ErrOutOfStock,
			Message: fmt.Sprintf("Sorry, only %d items available in total.", *available),
		}
	}

	c.Items[idx].Quantity = qty
	return nil
}

func (c *Cart) Remove(id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrLineNotFound
	}
	c.removeAt(idx)
	return nil
}

func (c *Cart) Clear() {
	c.Items = []Item{}
}

func (c *Cart) Line(id string) (Item, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return Item{}, false
	}
	return c.Items[idx], true
}

func (c *Cart) Count() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Total sums price times quantity. Lines with an unreadable price count as zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		price, err := domain.ParsePrice(item.Price)
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *Cart) find(item Item) int {
	for i, existing := range c.Items {
		if existing.sameProduct(item) {
			return i
		}
	}
	return -1
}

func (c *Cart) indexOf(id string) int {
	for i, existing := range c.Items {
		if existing.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}
