package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicOrders    = "orders"
	TopicInventory = "inventory"

	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventStockChanged       = "stock_changed"
	EventInventoryReset     = "inventory_reset"
)

type OrderEvent struct {
	Type          string          `json:"type"`
	OrderID       string          `json:"order_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Status        Status          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
	Timestamp     time.Time       `json:"timestamp"`
}

type StockEvent struct {
	Type           string    `json:"type"`
	MenuItemID     string    `json:"menu_item_id,omitempty"`
	Name           string    `json:"name,omitempty"`
	AvailableCount int       `json:"available_count"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewOrderEvent(eventType string, o *Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:          eventType,
		OrderID:       o.ID,
		InvoiceNumber: o.InvoiceNumber,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		AdvanceAmount: o.AdvanceAmount,
		Timestamp:     at,
	}
}
