package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"harveys-cafe/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

const menuColumns = "id, name, category, description, price, size, type, image, available_count, daily_cap, created_at, updated_at"

func scanMenuItem(row scanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var price, size []byte
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Description, &price, &size,
		&item.Type, &item.Image, &item.AvailableCount, &item.DailyCap, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if item.Price, err = decodeStrings(price); err != nil {
		return nil, fmt.Errorf("menu item %s price: %w", item.ID, err)
	}
	if item.Size, err = decodeStrings(size); err != nil {
		return nil, fmt.Errorf("menu item %s size: %w", item.ID, err)
	}
	return &item, nil
}

func decodeStrings(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

// orderFields pairs each JSON field of domain.Order with its invoices column.
// The order of entries is the column order used in every invoices query.
var orderFields = []struct {
	Field  string
	Column string
}{
	{"id", "id"},
	{"invoiceNumber", "invoice_number"},
	{"orderId", "order_id"},
	{"paymentId", "payment_id"},
	{"userId", "user_id"},
	{"userDetails", "user_details"},
	{"items", "items"},
	{"subtotal", "subtotal"},
	{"advanceAmount", "advance_amount"},
	{"remainingAmount", "remaining_amount"},
	{"totalAmount", "total_amount"},
	{"visitTime", "visit_time"},
	{"status", "status"},
	{"paymentStatus", "payment_status"},
	{"createdAt", "created_at"},
	{"updatedAt", "updated_at"},
	{"restaurantDetails", "restaurant_details"},
}

var invoiceColumns = func() string {
	columns := make([]string, len(orderFields))
	for i, f := range orderFields {
		columns[i] = f.Column
	}
	return strings.Join(columns, ", ")
}()

// invoiceRow is an invoices record as stored, JSON columns still encoded.
type invoiceRow struct {
	ID                string
	InvoiceNumber     string
	OrderID           string
	PaymentID         string
	UserID            string
	UserDetails       []byte
	Items             []byte
	Subtotal          decimal.Decimal
	AdvanceAmount     decimal.Decimal
	RemainingAmount   decimal.Decimal
	TotalAmount       decimal.Decimal
	VisitTime         string
	Status            string
	PaymentStatus     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	RestaurantDetails []byte
}

func (r *invoiceRow) targets() []interface{} {
	return []interface{}{
		&r.ID, &r.InvoiceNumber, &r.OrderID, &r.PaymentID, &r.UserID,
		&r.UserDetails, &r.Items,
		&r.Subtotal, &r.AdvanceAmount, &r.RemainingAmount, &r.TotalAmount,
		&r.VisitTime, &r.Status, &r.PaymentStatus,
		&r.CreatedAt, &r.UpdatedAt, &r.RestaurantDetails,
	}
}

func (r invoiceRow) values() []interface{} {
	return []interface{}{
		r.ID, r.InvoiceNumber, r.OrderID, r.PaymentID, r.UserID,
		r.UserDetails, r.Items,
		r.Subtotal, r.AdvanceAmount, r.RemainingAmount, r.TotalAmount,
		r.VisitTime, r.Status, r.PaymentStatus,
		r.CreatedAt, r.UpdatedAt, r.RestaurantDetails,
	}
}

func toInvoiceRow(o *domain.Order) (invoiceRow, error) {
	userDetails, err := json.Marshal(o.UserDetails)
	if err != nil {
		return invoiceRow{}, err
	}
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return invoiceRow{}, err
	}
	restaurant, err := json.Marshal(o.RestaurantDetails)
	if err != nil {
		return invoiceRow{}, err
	}

	return invoiceRow{
		ID:                o.ID,
		InvoiceNumber:     o.InvoiceNumber,
		OrderID:           o.OrderID,
		PaymentID:         o.PaymentID,
		UserID:            o.UserID,
		UserDetails:       userDetails,
		Items:             itemsJSON,
		Subtotal:          o.Subtotal,
		AdvanceAmount:     o.AdvanceAmount,
		RemainingAmount:   o.RemainingAmount,
		TotalAmount:       o.TotalAmount,
		VisitTime:         o.VisitTime,
		Status:            string(o.Status),
		PaymentStatus:     string(o.PaymentStatus),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		RestaurantDetails: restaurant,
	}, nil
}

func (r invoiceRow) order() (*domain.Order, error) {
	o := &domain.Order{
		ID:              r.ID,
		InvoiceNumber:   r.InvoiceNumber,
		OrderID:         r.OrderID,
		PaymentID:       r.PaymentID,
		UserID:          r.UserID,
		Subtotal:        r.Subtotal,
		AdvanceAmount:   r.AdvanceAmount,
		RemainingAmount: r.RemainingAmount,
		TotalAmount:     r.TotalAmount,
		VisitTime:       r.VisitTime,
		Status:          domain.Status(r.Status),
		PaymentStatus:   domain.PaymentStatus(r.PaymentStatus),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Items:           []domain.OrderItem{},
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = domain.PaymentPending
	}

	if len(r.UserDetails) > 0 {
		if err := json.Unmarshal(r.UserDetails, &o.UserDetails); err != nil {
			return nil, fmt.Errorf("invoice %s user_details: %w", r.ID, err)
		}
	}
	if len(r.Items) > 0 {
		if err := json.Unmarshal(r.Items, &o.Items); err != nil {
			return nil, fmt.Errorf("invoice %s items: %w", r.ID, err)
		}
	}
	if len(r.RestaurantDetails) > 0 {
		if err := json.Unmarshal(r.RestaurantDetails, &o.RestaurantDetails); err != nil {
			return nil, fmt.Errorf("invoice %s restaurant_details: %w", r.ID, err)
		}
	}
	return o, nil
}

func scanOrder(row scanner) (*domain.Order, error) {
	var r invoiceRow
	err := row.Scan(r.targets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.order()
}
