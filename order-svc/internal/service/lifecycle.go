package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"harveys-cafe/order-svc/internal/domain"
)

type OrderService struct {
	orders    OrderRepository
	tx        Transactor
	publisher EventPublisher
	carts     CartStore
	qr        QRGenerator
	clock     Clock
	ids       IDGenerator
}

func NewOrderService(orders OrderRepository, tx Transactor, publisher EventPublisher, carts CartStore, qr QRGenerator) *OrderService {
	return &OrderService{
		orders:    orders,
		tx:        tx,
		publisher: publisher,
		carts:     carts,
		qr:        qr,
		clock:     SystemClock{},
		ids:       RandomIDs{},
	}
}

func (s *OrderService) WithClock(clock Clock) *OrderService {
	s.clock = clock
	return s
}

func (s *OrderService) WithIDs(ids IDGenerator) *OrderService {
	s.ids = ids
	return s
}

// StockCredit is one inventory record restored by a cancellation.
type StockCredit struct {
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	AvailableCount int    `json:"availableCount"`
}

type CancellationResult struct {
	Order    *domain.Order `json:"order"`
	Credited []StockCredit `json:"credited"`
	// Skipped names the lines that matched no inventory record.
	Skipped []string `json:"skipped"`
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx, filter)
}

func (s *OrderService) Stats(ctx context.Context) (*domain.OrderStats, error) {
	return s.orders.OrderStats(ctx)
}

func (s *OrderService) QRCode(ctx context.Context, id string) ([]byte, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(order.InvoiceNumber)
}

func (s *OrderService) Approve(ctx context.Context, id string) (*domain.Order, error) {
	return s.Transition(ctx, id, domain.StatusApproved)
}

func (s *OrderService) Cancel(ctx context.Context, id string) (*CancellationResult, error) {
	return s.transition(ctx, id, domain.StatusCancelled)
}

func (s *OrderService) Transition(ctx context.Context, id string, target domain.Status) (*domain.Order, error) {
	result, err := s.transition(ctx, id, target)
	if err != nil {
		return nil, err
	}
	return result.Order, nil
}

// transition moves an order along the status table. Cancellation returns the
// ordered quantities to inventory, matched by item name. The status change and
// any credits commit together or not at all.
func (s *OrderService) transition(ctx context.Context, id string, target domain.Status) (*CancellationResult, error) {
	now := s.clock.Now().UTC()
	result := &CancellationResult{Credited: []StockCredit{}, Skipped: []string{}}

	err := s.tx.WithinTx(ctx, func(store TxStore) error {
		result.Credited = result.Credited[:0]
		result.Skipped = result.Skipped[:0]

		order, err := store.LockOrder(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Status.TransitionTo(target); err != nil {
			return err
		}
		if err := store.UpdateOrderStatus(ctx, id, target, now); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		order.Status = target
		order.UpdatedAt = now
		result.Order = order

		if target != domain.StatusCancelled {
			return nil
		}
		for _, line := range order.Items {
			item, err := store.FindMenuItemByName(ctx, line.Name)
			if errors.Is(err, domain.ErrMenuItemNotFound) {
				log.Printf("WARN: order %s: no inventory record named %q, %d units not restored", id, line.Name, line.Quantity)
				result.Skipped = append(result.Skipped, line.Name)
				continue
			}
			if err != nil {
				return fmt.Errorf("lookup stock for %q: %w", line.Name, err)
			}

			restored := item.AvailableCount + line.Quantity
			if err := store.SetAvailableCount(ctx, item.ID, restored); err != nil {
				return fmt.Errorf("restore stock for %q: %w", item.Name, err)
			}
			result.Credited = append(result.Credited, StockCredit{
				MenuItemID:     item.ID,
				Name:           item.Name,
				Quantity:       line.Quantity,
				AvailableCount: restored,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Order %s moved to %s", id, target)
	s.publishOrder(ctx, domain.EventOrderStatusChanged, result.Order, now)

	events := make([]domain.StockEvent, 0, len(result.Credited))
	for _, credit := range result.Credited {
		events = append(events, domain.StockEvent{
			Type:           domain.EventStockChanged,
			MenuItemID:     credit.MenuItemID,
			Name:           credit.Name,
			AvailableCount: credit.AvailableCount,
			Timestamp:      now,
		})
	}
	s.publishStock(ctx, events)

	return result, nil
}
