package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderItem is a cart line as submitted by the client and stored with the invoice.
type OrderItem struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selectedSize,omitempty"`
	Category     string `json:"category,omitempty"`
	Image        string `json:"image,omitempty"`
	MenuItemID   string `json:"menu_item_id,omitempty"`
}

func (i OrderItem) LineTotal() (decimal.Decimal, error) {
	price, err := ParsePrice(i.Price)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(decimal.NewFromInt(int64(i.Quantity))), nil
}

type RestaurantDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	GST     string `json:"gst"`
}

var DefaultRestaurant = RestaurantDetails{
	Name:    "Harvey's Cafe",
	Address: "123 Main Street, City, State 12345",
	Phone:   "+91 9876543210",
	Email:   "info@harveyscafe.com",
	GST:     "29ABCDE1234F1Z5",
}

type Order struct {
	ID                string            `json:"id"`
	InvoiceNumber     string            `json:"invoiceNumber"`
	OrderID           string            `json:"orderId"`
	PaymentID         string            `json:"paymentId"`
	UserID            string            `json:"userId"`
	UserDetails       CustomerDetails   `json:"userDetails"`
	Items             []OrderItem       `json:"items"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	AdvanceAmount     decimal.Decimal   `json:"advanceAmount"`
	RemainingAmount   decimal.Decimal   `json:"remainingAmount"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"`
	VisitTime         string            `json:"visitTime"`
	Status            Status            `json:"status"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
	RestaurantDetails RestaurantDetails `json:"restaurantDetails"`
}

type OrderFilter struct {
	Status Status
	Query  string
}

type OrderStats struct {
	Pending    int             `json:"pending"`
	Approved   int             `json:"approved"`
	TotalSales int             `json:"totalSales"`
	Revenue    decimal.Decimal `json:"revenue"`
}
