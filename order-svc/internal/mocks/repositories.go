package mocks

import (
	"context"

	"harveys-cafe/order-svc/internal/cart"
	"harveys-cafe/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MenuRepository struct {
	mock.Mock
}

func NewMenuRepository(t testingT) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	ret := m.Called(ctx)
	var r0 []domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (m *MenuRepository) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	ret := m.Called(ctx, id)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (m *MenuRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MenuRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MenuRepository) SetAvailableCount(ctx context.Context, id string, count int) error {
	return m.Called(ctx, id, count).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	ret := m.Called(ctx, filter)
	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *OrderRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ret := m.Called(ctx, id)
	var r0 *domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *OrderRepository) OrderStats(ctx context.Context) (*domain.OrderStats, error) {
	ret := m.Called(ctx)
	var r0 *domain.OrderStats
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.OrderStats)
	}
	return r0, ret.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *EventPublisher) PublishStockEvent(ctx context.Context, event domain.StockEvent) error {
	return m.Called(ctx, event).Error(0)
}

type CartStore struct {
	mock.Mock
}

func NewCartStore(t testingT) *CartStore {
	m := &CartStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartStore) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	ret := m.Called(ctx, cartID)
	var r0 *cart.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*cart.Cart)
	}
	return r0, ret.Error(1)
}

func (m *CartStore) Save(ctx context.Context, cartID string, c *cart.Cart) error {
	return m.Called(ctx, cartID, c).Error(0)
}

func (m *CartStore) Delete(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(invoiceNumber string) ([]byte, error) {
	ret := m.Called(invoiceNumber)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}
