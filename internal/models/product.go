package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a purchasable item. Only the display name participates
// in ticket payloads; everything else is ordinary catalog data.
type Product struct {
	ID          int             `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Validate validates product data
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if len(p.Name) > 100 {
		return errors.New("product name must be less than 100 characters")
	}
	if p.Price.IsNegative() {
		return errors.New("product price cannot be negative")
	}
	if p.Stock < 0 {
		return errors.New("product stock cannot be negative")
	}
	return nil
}
