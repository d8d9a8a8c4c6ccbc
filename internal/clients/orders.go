package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"cart-ticketing-service/internal/models"
)

// OrderClient resolves and mutates orders through the remote order service.
// It satisfies services.OrderRepository.
type OrderClient struct {
	apiClient
}

// NewOrderClient creates a client for the order service at baseURL.
func NewOrderClient(baseURL string, tokens *TokenProvider) *OrderClient {
	return &OrderClient{apiClient: newAPIClient(baseURL, tokens)}
}

type orderPayload struct {
	ID          int             `json:"id"`
	UserID      int             `json:"userId"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	SecretKey   string          `json:"secretKey"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (p *orderPayload) toModel() *models.Order {
	return &models.Order{
		ID:          p.ID,
		UserID:      p.UserID,
		Status:      models.OrderStatus(p.Status),
		TotalAmount: p.TotalAmount,
		SecretKey:   p.SecretKey,
		CreatedAt:   p.CreatedAt,
	}
}

// OrderByID fetches an order, secret included, from the order service.
func (c *OrderClient) OrderByID(ctx context.Context, id int) (*models.Order, error) {
	var payload orderPayload
	if err := c.get(ctx, fmt.Sprintf("/api/internal/orders/%d", id), models.ErrOrderNotFound, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

// PendingByUser fetches the user's open order.
func (c *OrderClient) PendingByUser(ctx context.Context, userID int) (*models.Order, error) {
	var payload orderPayload
	path := fmt.Sprintf("/api/internal/orders/pending?userId=%d", userID)
	if err := c.get(ctx, path, models.ErrOrderNotFound, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

// Create opens a new pending order for the user; the order service
// provisions its secret.
func (c *OrderClient) Create(ctx context.Context, userID int) (*models.Order, error) {
	var payload orderPayload
	body := map[string]int{"userId": userID}
	if err := c.do(ctx, http.MethodPost, "/api/internal/orders", body, models.ErrUserNotFound, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

// UpdateTotal sets the order's total amount.
func (c *OrderClient) UpdateTotal(ctx context.Context, orderID int, total decimal.Decimal) error {
	path := fmt.Sprintf("/api/internal/orders/%d/total", orderID)
	body := map[string]string{"totalAmount": total.String()}
	return c.do(ctx, http.MethodPut, path, body, models.ErrOrderNotFound, nil)
}
