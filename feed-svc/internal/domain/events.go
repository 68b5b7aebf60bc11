package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicOrders    = "orders"
	TopicInventory = "inventory"
	TopicPayments  = "payments"

	EventOrderCreated        = "order_created"
	EventOrderStatusChanged  = "order_status_changed"
	EventStockChanged        = "stock_changed"
	EventInventoryReset      = "inventory_reset"
	EventPaymentOrderCreated = "payment_order_created"

	// ChannelMenu carries stock changes to open customer menus.
	ChannelMenu = "menu"
	// ChannelOrders carries order events to the admin dashboard.
	ChannelOrders = "orders"

	DateLayout = "2006-01-02"
)

type OrderEvent struct {
	Type          string          `json:"type"`
	OrderID       string          `json:"order_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Status        string          `json:"status"`
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

type PaymentEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

// DailyStats are the dashboard counters for one calendar day.
type DailyStats struct {
	Date           string          `json:"date"`
	OrdersCreated  int64           `json:"orders_created"`
	Approved       int64           `json:"approved"`
	Cancelled      int64           `json:"cancelled"`
	PaymentOrders  int64           `json:"payment_orders"`
	AdvanceRevenue decimal.Decimal `json:"advance_revenue"`
}
