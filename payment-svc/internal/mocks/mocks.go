package mocks

import (
	"context"

	"harveys-cafe/payment-svc/internal/domain"
	"harveys-cafe/payment-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type PaymentGateway struct {
	mock.Mock
}

func NewPaymentGateway(t testingT) *PaymentGateway {
	m := &PaymentGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentGateway) Configured() bool {
	return m.Called().Bool(0)
}

func (m *PaymentGateway) CreateOrder(ctx context.Context, req domain.GatewayOrderRequest) (*domain.GatewayOrder, error) {
	ret := m.Called(ctx, req)
	var r0 *domain.GatewayOrder
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.GatewayOrder)
	}
	return r0, ret.Error(1)
}

type PaymentPublisher struct {
	mock.Mock
}

func NewPaymentPublisher(t testingT) *PaymentPublisher {
	m := &PaymentPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentPublisher) PublishPaymentOrder(ctx context.Context, event domain.PaymentEvent) error {
	return m.Called(ctx, event).Error(0)
}

type PaymentServiceInterface struct {
	mock.Mock
}

func NewPaymentServiceInterface(t testingT) *PaymentServiceInterface {
	m := &PaymentServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentServiceInterface) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.PaymentOrder, error) {
	ret := m.Called(ctx, req)
	var r0 *domain.PaymentOrder
	if v := ret.Get(0); v != nil {
		r0 = v.(*domain.PaymentOrder)
	}
	return r0, ret.Error(1)
}

var (
	_ service.PaymentGateway          = (*PaymentGateway)(nil)
	_ service.PaymentPublisher        = (*PaymentPublisher)(nil)
	_ service.PaymentServiceInterface = (*PaymentServiceInterface)(nil)
)
