package mocks

import (
	"context"
	"time"

	"harveys-cafe/order-svc/internal/cart"
	"harveys-cafe/order-svc/internal/domain"
	"harveys-cafe/order-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t testingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderServiceInterface) Submit(ctx context.Context, req service.SubmitOrderRequest) (*domain.Order, error) {
	ret := m.Called(ctx, req)
	return orderOrNil(ret.Get(0)), ret.Error(1)
}

func (m *OrderServiceInterface) Get(ctx context.Context, id string) (*domain.Order, error) {
	ret := m.Called(ctx, id)
	return orderOrNil(ret.Get(0)), ret.Error(1)
}

func (m *OrderServiceInterface) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	ret := m.Called(ctx, filter)
	var r0 []domain.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (m *OrderServiceInterface) Stats(ctx context.Context) (*domain.OrderStats, error) {
	ret := m.Called(ctx)
	var r0 *domain.OrderStats
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.OrderStats)
	}
	return r0, ret.Error(1)
}

func (m *OrderServiceInterface) Approve(ctx context.Context, id string) (*domain.Order, error) {
	ret := m.Called(ctx, id)
	return orderOrNil(ret.Get(0)), ret.Error(1)
}

func (m *OrderServiceInterface) Cancel(ctx context.Context, id string) (*service.CancellationResult, error) {
	ret := m.Called(ctx, id)
	var r0 *service.CancellationResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*service.CancellationResult)
	}
	return r0, ret.Error(1)
}

func (m *OrderServiceInterface) Transition(ctx context.Context, id string, target domain.Status) (*domain.Order, error) {
	ret := m.Called(ctx, id, target)
	return orderOrNil(ret.Get(0)), ret.Error(1)
}

func (m *OrderServiceInterface) QRCode(ctx context.Context, id string) ([]byte, error) {
	ret := m.Called(ctx, id)
	var r0 []byte
	if v := ret.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, ret.Error(1)
}

func orderOrNil(v interface{}) *domain.Order {
	if v == nil {
		return nil
	}
	return v.(*domain.Order)
}

type MenuServiceInterface struct {
	mock.Mock
}

func NewMenuServiceInterface(t testingT) *MenuServiceInterface {
	m := &MenuServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuServiceInterface) List(ctx context.Context) ([]domain.MenuItem, error) {
	ret := m.Called(ctx)
	return itemsOrNil(ret.Get(0)), ret.Error(1)
}

func (m *MenuServiceInterface) ListAll(ctx context.Context) ([]domain.MenuItem, error) {
	ret := m.Called(ctx)
	return itemsOrNil(ret.Get(0)), ret.Error(1)
}

func (m *MenuServiceInterface) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	ret := m.Called(ctx, id)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (m *MenuServiceInterface) Create(ctx context.Context, item *domain.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MenuServiceInterface) Update(ctx context.Context, item *domain.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MenuServiceInterface) SetStock(ctx context.Context, id string, count int) (*domain.MenuItem, error) {
	ret := m.Called(ctx, id, count)
	var r0 *domain.MenuItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (m *MenuServiceInterface) Import(ctx context.Context) (int, error) {
	ret := m.Called(ctx)
	return ret.Int(0), ret.Error(1)
}

func itemsOrNil(v interface{}) []domain.MenuItem {
	if v == nil {
		return nil
	}
	return v.([]domain.MenuItem)
}

type CartServiceInterface struct {
	mock.Mock
}

func NewCartServiceInterface(t testingT) *CartServiceInterface {
	m := &CartServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CartServiceInterface) Get(ctx context.Context, cartID string) (*cart.Cart, error) {
	ret := m.Called(ctx, cartID)
	return cartOrNil(ret.Get(0)), ret.Error(1)
}

func (m *CartServiceInterface) AddItem(ctx context.Context, cartID string, item cart.Item, qty int) (*cart.Cart, error) {
	ret := m.Called(ctx, cartID, item, qty)
	return cartOrNil(ret.Get(0)), ret.Error(1)
}

func (m *CartServiceInterface) UpdateItem(ctx context.Context, cartID, lineID string, qty int) (*cart.Cart, error) {
	ret := m.Called(ctx, cartID, lineID, qty)
	return cartOrNil(ret.Get(0)), ret.Error(1)
}

func (m *CartServiceInterface) RemoveItem(ctx context.Context, cartID, lineID string) (*cart.Cart, error) {
	ret := m.Called(ctx, cartID, lineID)
	return cartOrNil(ret.Get(0)), ret.Error(1)
}

func (m *CartServiceInterface) Clear(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

func cartOrNil(v interface{}) *cart.Cart {
	if v == nil {
		return nil
	}
	return v.(*cart.Cart)
}

type Resetter struct {
	mock.Mock
}

func NewResetter(t testingT) *Resetter {
	m := &Resetter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Resetter) ResetNow(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	var r0 int64
	if v := ret.Get(0); v != nil {
		r0 = v.(int64)
	}
	return r0, ret.Error(1)
}

type AuthServiceInterface struct {
	mock.Mock
}

func NewAuthServiceInterface(t testingT) *AuthServiceInterface {
	m := &AuthServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthServiceInterface) Login(email, password string) (string, time.Time, error) {
	ret := m.Called(email, password)
	var r1 time.Time
	if v := ret.Get(1); v != nil {
		r1 = v.(time.Time)
	}
	return ret.String(0), r1, ret.Error(2)
}

var (
	_ service.OrderServiceInterface = (*OrderServiceInterface)(nil)
	_ service.MenuServiceInterface  = (*MenuServiceInterface)(nil)
	_ service.CartServiceInterface  = (*CartServiceInterface)(nil)
	_ service.Resetter              = (*Resetter)(nil)
	_ service.AuthServiceInterface  = (*AuthServiceInterface)(nil)
	_ service.MenuRepository        = (*MenuRepository)(nil)
	_ service.OrderRepository       = (*OrderRepository)(nil)
	_ service.EventPublisher        = (*EventPublisher)(nil)
	_ service.CartStore             = (*CartStore)(nil)
	_ service.QRGenerator           = (*QRGenerator)(nil)
)
