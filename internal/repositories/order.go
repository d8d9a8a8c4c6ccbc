package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cart-ticketing-service/internal/models"
	"cart-ticketing-service/internal/utils"
)

// OrderRepository handles order data operations
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create creates a new pending order for the user, provisioning its ticket
// secret. Like user secrets, order secrets are generated exactly once.
func (r *OrderRepository) Create(ctx context.Context, userID int) (*models.Order, error) {
	secretKey, err := utils.GenerateSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to provision order secret: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO orders (user_id, status, total_amount, secret_key, created_at, updated_at)
		VALUES (?, ?, '0', ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, userID, models.OrderPending, secretKey, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get order id: %w", err)
	}

	return &models.Order{
		ID:          int(id),
		UserID:      userID,
		Status:      models.OrderPending,
		TotalAmount: decimal.Zero,
		SecretKey:   secretKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// OrderByID retrieves an order by ID
func (r *OrderRepository) OrderByID(ctx context.Context, id int) (*models.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, secret_key, created_at, updated_at
		FROM orders
		WHERE id = ?`

	return r.scanOrder(r.db.QueryRowContext(ctx, query, id))
}

// PendingByUser retrieves the user's open order, if any
func (r *OrderRepository) PendingByUser(ctx context.Context, userID int) (*models.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, secret_key, created_at, updated_at
		FROM orders
		WHERE user_id = ? AND status = ?
		ORDER BY created_at DESC
		LIMIT 1`

	return r.scanOrder(r.db.QueryRowContext(ctx, query, userID, models.OrderPending))
}

// UpdateTotal sets the order's total amount
func (r *OrderRepository) UpdateTotal(ctx context.Context, orderID int, total decimal.Decimal) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET total_amount = ?, updated_at = ? WHERE id = ?",
		total.String(), time.Now(), orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order total: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

// UpdateStatus transitions the order to a new status
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now(), orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) scanOrder(row *sql.Row) (*models.Order, error) {
	order := &models.Order{}
	var total string
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&total,
		&order.SecretKey,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: failed to get order: %v", models.ErrUpstreamUnavailable, err)
	}

	order.TotalAmount, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order total %q: %w", total, err)
	}
	return order, nil
}
