package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "INR"
	TopicPayments   = "payments"

	EventPaymentOrderCreated = "payment_order_created"
)

type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateOrderRequest is the checkout payload sent before the customer pays
// the advance. Amount is in major units (rupees).
type CreateOrderRequest struct {
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency"`
	Items       json.RawMessage  `json:"items"`
	VisitTime   string           `json:"visitTime"`
	UserDetails *CustomerDetails `json:"userDetails"`
}

func (r CreateOrderRequest) MissingFields() bool {
	items := strings.TrimSpace(string(r.Items))
	return r.Amount.IsZero() ||
		items == "" || items == "null" ||
		strings.TrimSpace(r.VisitTime) == "" ||
		r.UserDetails == nil
}

// MinorUnits converts a major-unit amount to paise, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// GatewayOrderRequest is the body of a gateway order creation call.
type GatewayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentOrder is what the checkout page needs to open the payment widget.
type PaymentOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type PaymentEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Receipt   string    `json:"receipt"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}
