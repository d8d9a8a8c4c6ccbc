package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// CartItem represents one line of an order's cart. QRCode holds the rendered
// ticket raster (PNG bytes) once tickets have been issued for the enclosing
// order; it is empty until then and overwritten on re-issuance.
type CartItem struct {
	ID        int             `json:"id" db:"id"`
	UserID    int             `json:"user_id" db:"user_id"`
	OrderID   int             `json:"order_id" db:"order_id"`
	ProductID int             `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
	QRCode    []byte          `json:"qr_code,omitempty" db:"qr_code"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// HasTicket returns true once a ticket raster has been stored on the line.
func (ci *CartItem) HasTicket() bool {
	return len(ci.QRCode) > 0
}

// AddToCartRequest represents a request to add a product to the cart
type AddToCartRequest struct {
	UserID    int `json:"userId"`
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Validate validates an add-to-cart request
func (req *AddToCartRequest) Validate() error {
	if req.UserID <= 0 {
		return errors.New("user id is required")
	}
	if req.ProductID <= 0 {
		return errors.New("product id is required")
	}
	if req.Quantity <= 0 {
		return errors.New("quantity must be greater than 0")
	}
	return nil
}
