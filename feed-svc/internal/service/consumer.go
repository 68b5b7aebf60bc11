package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"harveys-cafe/feed-svc/internal/domain"
	"harveys-cafe/feed-svc/internal/storage"
)

var ErrUnknownTopic = errors.New("unknown topic")

// Consumer fans events from one topic out to websocket channels and the daily counters.
type Consumer struct {
	Reader      MessageReader
	Store       StatsStore
	Broadcaster Broadcaster
	Location    *time.Location
}

func NewConsumer(reader MessageReader, store StatsStore, broadcaster Broadcaster, location *time.Location) *Consumer {
	if location == nil {
		location = time.Local
	}
	return &Consumer{
		Reader:      reader,
		Store:       store,
		Broadcaster: broadcaster,
		Location:    location,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Feed Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Feed consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		if err := c.Handle(ctx, message.Topic, message.Value); err != nil {
			log.Printf("Error handling %s message: %v", message.Topic, err)
		}
	}
}

func (c *Consumer) Handle(ctx context.Context, topic string, value []byte) error {
	switch topic {
	case domain.TopicOrders:
		return c.ProcessOrderEvent(ctx, value)
	case domain.TopicInventory:
		return c.ProcessStockEvent(value)
	case domain.TopicPayments:
		return c.ProcessPaymentEvent(ctx, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
}

func (c *Consumer) ProcessOrderEvent(ctx context.Context, value []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("unmarshal order event: %w", err)
	}
	log.Printf("Processing %s: OrderID=%s, Status=%s", event.Type, event.OrderID, event.Status)

	c.Broadcaster.Broadcast(domain.ChannelOrders, value)

	date := c.dateOf(event.Timestamp)
	switch {
	case event.Type == domain.EventOrderCreated:
		return c.Store.Increment(ctx, date, storage.FieldOrdersCreated, 1)
	case event.Type == domain.EventOrderStatusChanged && event.Status == "approved":
		if err := c.Store.Increment(ctx, date, storage.FieldApproved, 1); err != nil {
			return err
		}
		return c.Store.AddRevenue(ctx, date, event.AdvanceAmount)
	case event.Type == domain.EventOrderStatusChanged && event.Status == "cancelled":
		return c.Store.Increment(ctx, date, storage.FieldCancelled, 1)
	}
	return nil
}

// ProcessStockEvent only relays; stock is not counted.
func (c *Consumer) ProcessStockEvent(value []byte) error {
	var event domain.StockEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("unmarshal stock event: %w", err)
	}
	log.Printf("Processing %s: MenuItemID=%s, Available=%d", event.Type, event.MenuItemID, event.AvailableCount)

	c.Broadcaster.Broadcast(domain.ChannelMenu, value)
	return nil
}

func (c *Consumer) ProcessPaymentEvent(ctx context.Context, value []byte) error {
	var event domain.PaymentEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("unmarshal payment event: %w", err)
	}
	if event.Type != domain.EventPaymentOrderCreated {
		return nil
	}
	log.Printf("Processing %s: OrderID=%s", event.Type, event.OrderID)

	return c.Store.Increment(ctx, c.dateOf(event.Timestamp), storage.FieldPaymentOrders, 1)
}

// dateOf buckets an event into the cafe's calendar day; events without a timestamp count as today.
func (c *Consumer) dateOf(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.In(c.Location).Format(domain.DateLayout)
}
