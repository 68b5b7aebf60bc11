package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"harveys-cafe/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type SubmitOrderRequest struct {
	Items           []domain.OrderItem     `json:"items"`
	UserDetails     domain.CustomerDetails `json:"userDetails"`
	VisitTime       string                 `json:"visitTime"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	AdvanceAmount   decimal.Decimal        `json:"advanceAmount"`
	RemainingAmount decimal.Decimal        `json:"remainingAmount"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	PaymentID       string                 `json:"paymentId,omitempty"`
	CartID          string                 `json:"cartId,omitempty"`
}

func (r SubmitOrderRequest) Validate() error {
	verr := &ValidationError{}

	if len(r.Items) == 0 {
		verr.add("at least one item is required")
	}
	computed := decimal.Zero
	for i, item := range r.Items {
		if strings.TrimSpace(item.Name) == "" {
			verr.add(fmt.Sprintf("items[%d]: name is required", i))
		}
		if item.Quantity < 1 {
			verr.add(fmt.Sprintf("items[%d]: quantity must be at least 1", i))
		}
		lineTotal, err := item.LineTotal()
		if err != nil {
			verr.add(fmt.Sprintf("items[%d]: %v", i, err))
			continue
		}
		computed = computed.Add(lineTotal)
	}

	if strings.TrimSpace(r.UserDetails.Name) == "" {
		verr.add("userDetails.name is required")
	}
	switch email := strings.TrimSpace(r.UserDetails.Email); {
	case email == "":
		verr.add("userDetails.email is required")
	case !strings.Contains(email, "@"):
		verr.add("userDetails.email must be a valid email")
	}
	if strings.TrimSpace(r.UserDetails.Phone) == "" {
		verr.add("userDetails.phone is required")
	}
	if strings.TrimSpace(r.VisitTime) == "" {
		verr.add("visitTime is required")
	}

	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"subtotal", r.Subtotal},
		{"advanceAmount", r.AdvanceAmount},
		{"remainingAmount", r.RemainingAmount},
		{"totalAmount", r.TotalAmount},
	}
	for _, amount := range amounts {
		if amount.value.IsNegative() {
			verr.add(amount.name + " must not be negative")
		}
		// invoices store money as NUMERIC(12,2)
		if !amount.value.Equal(amount.value.Round(2)) {
			verr.add(amount.name + " must have at most 2 decimal places")
		}
	}
	if !r.AdvanceAmount.Add(r.RemainingAmount).Equal(r.TotalAmount) {
		verr.add("advanceAmount + remainingAmount must equal totalAmount")
	}
	if r.TotalAmount.LessThan(r.Subtotal) {
		verr.add("totalAmount must not be less than subtotal")
	}
	if len(r.Items) > 0 && len(verr.Problems) == 0 && !computed.Equal(r.Subtotal) {
		verr.add(fmt.Sprintf("subtotal %s does not match items total %s", r.Subtotal, computed))
	}

	return verr.orNil()
}

// Submit validates the request, draws down inventory for every line and
// records the order as pending approval. Inventory updates and the insert
// commit together.
func (s *OrderService) Submit(ctx context.Context, req SubmitOrderRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	orderID := s.ids.OrderID(now)
	order := &domain.Order{
		ID:                orderID,
		InvoiceNumber:     s.ids.InvoiceNumber(now),
		OrderID:           orderID,
		PaymentID:         req.PaymentID,
		UserID:            req.UserDetails.Email,
		UserDetails:       req.UserDetails,
		Items:             req.Items,
		Subtotal:          req.Subtotal,
		AdvanceAmount:     req.AdvanceAmount,
		RemainingAmount:   req.RemainingAmount,
		TotalAmount:       req.TotalAmount,
		VisitTime:         req.VisitTime,
		Status:            domain.StatusPending,
		PaymentStatus:     domain.PaymentPending,
		CreatedAt:         now,
		UpdatedAt:         now,
		RestaurantDetails: domain.DefaultRestaurant,
	}

	var changes []domain.StockEvent
	err := s.tx.WithinTx(ctx, func(store TxStore) error {
		changes = changes[:0]
		for _, line := range order.Items {
			item, err := lookupInventory(ctx, store, line)
			if errors.Is(err, domain.ErrMenuItemNotFound) {
				log.Printf("WARN: no inventory record for %q (menu_item_id=%q), stock not updated", line.Name, line.MenuItemID)
				continue
			}
			if err != nil {
				return fmt.Errorf("lookup stock for %q: %w", line.Name, err)
			}

			remaining := item.AvailableCount - line.Quantity
			if remaining < 0 {
				remaining = 0
			}
			if err := store.SetAvailableCount(ctx, item.ID, remaining); err != nil {
				return fmt.Errorf("update stock for %q: %w", item.Name, err)
			}
			log.Printf("Stock for %s: %d -> %d", item.Name, item.AvailableCount, remaining)

			changes = append(changes, domain.StockEvent{
				Type:           domain.EventStockChanged,
				MenuItemID:     item.ID,
				Name:           item.Name,
				AvailableCount: remaining,
				Timestamp:      now,
			})
		}
		return store.InsertOrder(ctx, order)
	})
	if err != nil {
		log.Printf("ERROR: submit order %s: %v", order.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	s.publishOrder(ctx, domain.EventOrderCreated, order, now)
	s.publishStock(ctx, changes)

	if req.CartID != "" && s.carts != nil {
		if err := s.carts.Delete(ctx, req.CartID); err != nil {
			log.Printf("WARN: failed to clear cart %s: %v", req.CartID, err)
		}
	}

	return order, nil
}

func lookupInventory(ctx context.Context, store TxStore, line domain.OrderItem) (*domain.MenuItem, error) {
	if !domain.IsPlaceholderID(line.MenuItemID) {
		return store.FindMenuItemByID(ctx, line.MenuItemID)
	}
	return store.FindMenuItemByName(ctx, line.Name)
}

func (s *OrderService) publishOrder(ctx context.Context, eventType string, order *domain.Order, at time.Time) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, domain.NewOrderEvent(eventType, order, at)); err != nil {
		log.Printf("WARN: publish %s for %s: %v", eventType, order.ID, err)
	}
}

func (s *OrderService) publishStock(ctx context.Context, events []domain.StockEvent) {
	if s.publisher == nil {
		return
	}
	for _, event := range events {
		if err := s.publisher.PublishStockEvent(ctx, event); err != nil {
			log.Printf("WARN: publish stock change for %s: %v", event.Name, err)
		}
	}
}
