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

// CartRepository handles cart line persistence, including the ticket raster
// stored on each line. Only the raster bytes live here; ciphertext,
// plaintext, and derived keys are never persisted.
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

const cartItemColumns = "id, user_id, order_id, product_id, quantity, price, qr_code, created_at"

// Create creates a new cart line
func (r *CartRepository) Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	now := time.Now()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO cart_items (user_id, order_id, product_id, quantity, price, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		item.UserID, item.OrderID, item.ProductID, item.Quantity, item.Price.String(), now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item id: %w", err)
	}

	item.ID = int(id)
	item.CreatedAt = now
	return item, nil
}

// ItemByID retrieves a cart line by ID
func (r *CartRepository) ItemByID(ctx context.Context, id int) (*models.CartItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+cartItemColumns+" FROM cart_items WHERE id = ?", id)
	return scanCartItem(row)
}

// ItemFor retrieves the cart line for a (product, order, user) triple
func (r *CartRepository) ItemFor(ctx context.Context, productID, orderID, userID int) (*models.CartItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+cartItemColumns+" FROM cart_items WHERE product_id = ? AND order_id = ? AND user_id = ?",
		productID, orderID, userID)
	return scanCartItem(row)
}

// ItemsByOrder retrieves all cart lines belonging to an order
func (r *CartRepository) ItemsByOrder(ctx context.Context, orderID int) ([]*models.CartItem, error) {
	return r.queryItems(ctx,
		"SELECT "+cartItemColumns+" FROM cart_items WHERE order_id = ? ORDER BY id", orderID)
}

// ItemsByUser retrieves all cart lines belonging to a user
func (r *CartRepository) ItemsByUser(ctx context.Context, userID int) ([]*models.CartItem, error) {
	return r.queryItems(ctx,
		"SELECT "+cartItemColumns+" FROM cart_items WHERE user_id = ? ORDER BY id", userID)
}

// UpdateQuantity sets a cart line's quantity
func (r *CartRepository) UpdateQuantity(ctx context.Context, id, quantity int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = ? WHERE id = ?", quantity, id)
	if err != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a cart line
func (r *CartRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return checkAffected(result)
}

// SaveTicketImage stores the ticket raster on a cart line, overwriting any
// prior raster. Distinct lines map to distinct rows, so concurrent issuers
// never alias the same write.
func (r *CartRepository) SaveTicketImage(ctx context.Context, cartItemID int, raster []byte) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cart_items SET qr_code = ? WHERE id = ?", raster, cartItemID)
	if err != nil {
		return fmt.Errorf("failed to save ticket image: %w", err)
	}
	return checkAffected(result)
}

// TicketImage retrieves the stored ticket raster for a cart line
func (r *CartRepository) TicketImage(ctx context.Context, cartItemID int) ([]byte, error) {
	var raster []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT qr_code FROM cart_items WHERE id = ?", cartItemID).Scan(&raster)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to get ticket image: %w", err)
	}
	return raster, nil
}

func (r *CartRepository) queryItems(ctx context.Context, query string, arg int) ([]*models.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []*models.CartItem
	for rows.Next() {
		item, err := scanCartItemRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanCartItem(row *sql.Row) (*models.CartItem, error) {
	item := &models.CartItem{}
	var price string
	err := row.Scan(&item.ID, &item.UserID, &item.OrderID, &item.ProductID, &item.Quantity, &price, &item.QRCode, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to scan cart item: %w", err)
	}
	return parsePrice(item, price)
}

func scanCartItemRows(rows *sql.Rows) (*models.CartItem, error) {
	item := &models.CartItem{}
	var price string
	err := rows.Scan(&item.ID, &item.UserID, &item.OrderID, &item.ProductID, &item.Quantity, &price, &item.QRCode, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cart item: %w", err)
	}
	return parsePrice(item, price)
}

func parsePrice(item *models.CartItem, price string) (*models.CartItem, error) {
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cart item price %q: %w", price, err)
	}
	item.Price = parsed
	return item, nil
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return models.ErrCartItemNotFound
	}
	return nil
}
