package storage

import (
	"context"
	"encoding/json"

	"harveys-cafe/order-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher writes order events to the orders topic and stock events to
// the inventory topic.
type KafkaPublisher struct {
	Orders    MessageWriter
	Inventory MessageWriter
}

func NewKafkaPublisher(orders, inventory MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Orders: orders, Inventory: inventory}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Orders.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

func (p *KafkaPublisher) PublishStockEvent(ctx context.Context, event domain.StockEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	key := event.MenuItemID
	if key == "" {
		key = event.Type
	}
	return p.Inventory.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}
