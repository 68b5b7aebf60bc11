package service

import (
	"context"
	"time"

	"harveys-cafe/payment-svc/internal/domain"
)

type PaymentServiceInterface interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.PaymentOrder, error)
}

type PaymentGateway interface {
	Configured() bool
	CreateOrder(ctx context.Context, req domain.GatewayOrderRequest) (*domain.GatewayOrder, error)
}

type PaymentPublisher interface {
	PublishPaymentOrder(ctx context.Context, event domain.PaymentEvent) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

var _ PaymentServiceInterface = (*PaymentService)(nil)
