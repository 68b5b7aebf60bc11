package tests

import (
	"context"
	"strconv"
	"sync"
	"time"

	"harveys-cafe/order-svc/internal/domain"
	"harveys-cafe/order-svc/internal/service"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory Transactor. Changes made inside WithinTx are only
// kept when the callback returns nil.
type memStore struct {
	mu         sync.Mutex
	items      map[string]domain.MenuItem
	itemOrder  []string
	orders     map[string]domain.Order
	insertErr  error
	updateErr  error
	txAttempts int
}

func newMemStore() *memStore {
	return &memStore{
		items:  map[string]domain.MenuItem{},
		orders: map[string]domain.Order{},
	}
}

func (m *memStore) addItem(id, name string, count int) {
	m.items[id] = domain.MenuItem{ID: id, Name: name, AvailableCount: count, DailyCap: domain.DailyCap, Price: []string{"₹100"}}
	m.itemOrder = append(m.itemOrder, id)
}

func (m *memStore) count(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id].AvailableCount
}

func (m *memStore) order(id string) (domain.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	return o, ok
}

func (m *memStore) WithinTx(ctx context.Context, fn func(service.TxStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txAttempts++

	tx := &memTx{parent: m, items: map[string]domain.MenuItem{}, orders: map[string]domain.Order{}}
	for k, v := range m.items {
		tx.items[k] = v
	}
	for k, v := range m.orders {
		tx.orders[k] = v
	}

	if err := fn(tx); err != nil {
		return err
	}
	m.items = tx.items
	m.orders = tx.orders
	return nil
}

type memTx struct {
	parent *memStore
	items  map[string]domain.MenuItem
	orders map[string]domain.Order
}

func (t *memTx) FindMenuItemByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, ok := t.items[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	return &item, nil
}

func (t *memTx) FindMenuItemByName(ctx context.Context, name string) (*domain.MenuItem, error) {
	for _, id := range t.parent.itemOrder {
		item, ok := t.items[id]
		if ok && domain.NormalizeName(item.Name) == domain.NormalizeName(name) {
			return &item, nil
		}
	}
	return nil, domain.ErrMenuItemNotFound
}

func (t *memTx) SetAvailableCount(ctx context.Context, id string, count int) error {
	item, ok := t.items[id]
	if !ok {
		return domain.ErrMenuItemNotFound
	}
	item.AvailableCount = count
	t.items[id] = item
	return nil
}

func (t *memTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	if t.parent.insertErr != nil {
		return t.parent.insertErr
	}
	t.orders[order.ID] = *order
	return nil
}

func (t *memTx) LockOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := t.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &o, nil
}

func (t *memTx) UpdateOrderStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	if t.parent.updateErr != nil {
		return t.parent.updateErr
	}
	o, ok := t.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	t.orders[id] = o
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) OrderID(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "ORD_" + strconv.Itoa(s.n)
}

func (s *sequentialIDs) InvoiceNumber(now time.Time) string {
	return "INV_" + strconv.Itoa(s.n)
}

var testNow = time.Date(2026, 10, 17, 10, 30, 0, 0, time.UTC)

func vegRollRequest(qty int, menuItemID string) service.SubmitOrderRequest {
	total := decimal.NewFromInt(int64(100 * qty))
	advance := total.Div(decimal.NewFromInt(2))
	return service.SubmitOrderRequest{
		Items: []domain.OrderItem{
			{Name: "Veg Roll", Price: "₹100", Quantity: qty, Category: "Rolls", MenuItemID: menuItemID},
		},
		UserDetails: domain.CustomerDetails{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "+91 9000000000",
		},
		VisitTime:       "2026-10-17T19:30:00+05:30",
		Subtotal:        total,
		AdvanceAmount:   advance,
		RemainingAmount: total.Sub(advance),
		TotalAmount:     total,
	}
}
