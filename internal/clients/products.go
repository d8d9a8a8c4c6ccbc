package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cart-ticketing-service/internal/models"
)

// ProductClient resolves product display data from the remote product
// service. It satisfies services.ProductSource.
type ProductClient struct {
	apiClient
}

// NewProductClient creates a client for the product service at baseURL.
func NewProductClient(baseURL string, tokens *TokenProvider) *ProductClient {
	return &ProductClient{apiClient: newAPIClient(baseURL, tokens)}
}

type productPayload struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductByID fetches a product from the product service.
func (c *ProductClient) ProductByID(ctx context.Context, id int) (*models.Product, error) {
	var payload productPayload
	if err := c.get(ctx, fmt.Sprintf("/api/products/%d", id), models.ErrProductNotFound, &payload); err != nil {
		return nil, err
	}
	return &models.Product{
		ID:          payload.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		CreatedAt:   payload.CreatedAt,
	}, nil
}
