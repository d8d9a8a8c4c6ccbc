package models

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Order represents a customer order. Like User, it owns a ticket-signing
// secret generated once at creation and stored base64-encoded.
type Order struct {
	ID          int             `json:"id" db:"id"`
	UserID      int             `json:"user_id" db:"user_id"`
	Status      OrderStatus     `json:"status" db:"status"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	SecretKey   string          `json:"-" db:"secret_key"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Provisioned returns true if the order exists and carries a secret key.
func (o *Order) Provisioned() bool {
	return o != nil && o.ID != 0 && o.SecretKey != ""
}

// SecretBytes decodes the stored secret key into raw bytes.
func (o *Order) SecretBytes() ([]byte, error) {
	if !o.Provisioned() {
		return nil, errors.New("order has no secret key")
	}
	return base64.StdEncoding.DecodeString(o.SecretKey)
}

// Validate validates the order status
func (o *Order) Validate() error {
	switch o.Status {
	case OrderPending, OrderPaid, OrderCancelled:
		return nil
	default:
		return errors.New("invalid order status")
	}
}
