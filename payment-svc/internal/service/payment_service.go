package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"harveys-cafe/payment-svc/internal/domain"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway configuration missing")
	ErrMissingFields        = errors.New("missing required fields")
	ErrGatewayFailed        = errors.New("failed to create order")
)

type PaymentService struct {
	gateway   PaymentGateway
	publisher PaymentPublisher
	clock     Clock
}

func NewPaymentService(gateway PaymentGateway, publisher PaymentPublisher) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		publisher: publisher,
		clock:     SystemClock{},
	}
}

func (s *PaymentService) WithClock(clock Clock) *PaymentService {
	s.clock = clock
	return s
}

// CreateOrder opens a gateway order for the advance payment. The checkout
// details travel as order notes so they show up in the gateway dashboard.
func (s *PaymentService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.PaymentOrder, error) {
	if s.gateway == nil || !s.gateway.Configured() {
		log.Println("ERROR: payment gateway keys are missing from the environment")
		return nil, ErrGatewayNotConfigured
	}
	if req.MissingFields() {
		return nil, ErrMissingFields
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	var items bytes.Buffer
	if err := json.Compact(&items, req.Items); err != nil {
		return nil, fmt.Errorf("%w: items: %w", ErrMissingFields, err)
	}

	now := s.clock.Now()
	gatewayReq := domain.GatewayOrderRequest{
		Amount:   domain.MinorUnits(req.Amount),
		Currency: currency,
		Receipt:  "order_" + strconv.FormatInt(now.UnixMilli(), 10),
		Notes: map[string]string{
			"visitTime": req.VisitTime,
			"userEmail": req.UserDetails.Email,
			"userName":  req.UserDetails.Name,
			"userPhone": req.UserDetails.Phone,
			"items":     items.String(),
		},
	}

	order, err := s.gateway.CreateOrder(ctx, gatewayReq)
	if err != nil {
		log.Printf("ERROR: creating gateway order %s: %v", gatewayReq.Receipt, err)
		return nil, fmt.Errorf("%w: %w", ErrGatewayFailed, err)
	}

	if s.publisher != nil {
		event := domain.PaymentEvent{
			Type:      domain.EventPaymentOrderCreated,
			OrderID:   order.ID,
			Receipt:   gatewayReq.Receipt,
			Amount:    order.Amount,
			Currency:  order.Currency,
			Email:     req.UserDetails.Email,
			Timestamp: now,
		}
		if err := s.publisher.PublishPaymentOrder(ctx, event); err != nil {
			log.Printf("WARN: publish payment order %s: %v", order.ID, err)
		}
	}

	return &domain.PaymentOrder{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}
