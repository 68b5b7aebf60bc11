package service

import (
	"context"
	"time"

	"harveys-cafe/order-svc/internal/cart"
	"harveys-cafe/order-svc/internal/domain"
)

type MenuRepository interface {
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	SetAvailableCount(ctx context.Context, id string, count int) error
}

type OrderRepository interface {
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	OrderStats(ctx context.Context) (*domain.OrderStats, error)
}

// TxStore is the storage available inside a transaction. Reads of menu items
// and orders lock the returned rows until the transaction ends.
type TxStore interface {
	FindMenuItemByID(ctx context.Context, id string) (*domain.MenuItem, error)
	FindMenuItemByName(ctx context.Context, name string) (*domain.MenuItem, error)
	SetAvailableCount(ctx context.Context, id string, count int) error
	InsertOrder(ctx context.Context, order *domain.Order) error
	LockOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(TxStore) error) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
	PublishStockEvent(ctx context.Context, event domain.StockEvent) error
}

type CartStore interface {
	Load(ctx context.Context, cartID string) (*cart.Cart, error)
	Save(ctx context.Context, cartID string, c *cart.Cart) error
	Delete(ctx context.Context, cartID string) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type OrderServiceInterface interface {
	Submit(ctx context.Context, req SubmitOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Stats(ctx context.Context) (*domain.OrderStats, error)
	Approve(ctx context.Context, id string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*CancellationResult, error)
	Transition(ctx context.Context, id string, target domain.Status) (*domain.Order, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
}

type MenuServiceInterface interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	ListAll(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	SetStock(ctx context.Context, id string, count int) (*domain.MenuItem, error)
	Import(ctx context.Context) (int, error)
}

type CartServiceInterface interface {
	Get(ctx context.Context, cartID string) (*cart.Cart, error)
	AddItem(ctx context.Context, cartID string, item cart.Item, qty int) (*cart.Cart, error)
	UpdateItem(ctx context.Context, cartID, lineID string, qty int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, cartID, lineID string) (*cart.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

// Resetter restores every item to its daily cap on demand.
type Resetter interface {
	ResetNow(ctx context.Context) (int64, error)
}

type AuthServiceInterface interface {
	Login(email, password string) (string, time.Time, error)
}

var (
	_ OrderServiceInterface = (*OrderService)(nil)
	_ MenuServiceInterface  = (*MenuService)(nil)
	_ CartServiceInterface  = (*CartService)(nil)
)
