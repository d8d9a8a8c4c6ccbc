package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cart-ticketing-service/internal/models"
)

// ProductRepository handles product catalog data operations
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	now := time.Now()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO products (name, description, price, stock, created_at) VALUES (?, ?, ?, ?, ?)",
		product.Name, product.Description, product.Price.String(), product.Stock, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get product id: %w", err)
	}

	created := *product
	created.ID = int(id)
	created.CreatedAt = now
	return &created, nil
}

// ProductByID retrieves a product by ID
func (r *ProductRepository) ProductByID(ctx context.Context, id int) (*models.Product, error) {
	query := `
		SELECT id, name, description, price, stock, created_at
		FROM products
		WHERE id = ?`

	product := &models.Product{}
	var price string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&price,
		&product.Stock,
		&product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: failed to get product: %v", models.ErrUpstreamUnavailable, err)
	}

	product.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product price %q: %w", price, err)
	}
	return product, nil
}

// List returns all products
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, price, stock, created_at FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		var price string
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &price, &product.Stock, &product.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		product.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse product price %q: %w", price, err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
