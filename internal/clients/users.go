package clients

import (
	"context"
	"fmt"
	"time"

	"cart-ticketing-service/internal/models"
)

// UserClient resolves users from the remote user service. It satisfies
// services.UserSource, so the composition root can swap it for the local
// repository without touching the ticket service.
type UserClient struct {
	apiClient
}

// NewUserClient creates a client for the user service at baseURL.
func NewUserClient(baseURL string, tokens *TokenProvider) *UserClient {
	return &UserClient{apiClient: newAPIClient(baseURL, tokens)}
}

// userPayload is the internal wire form. Unlike the public model, it
// carries the secret key: only the service-to-service API exposes it.
type userPayload struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	SecretKey string    `json:"secretKey"`
	CreatedAt time.Time `json:"created_at"`
}

// UserByID fetches a user, secret included, from the user service.
func (c *UserClient) UserByID(ctx context.Context, id int) (*models.User, error) {
	var payload userPayload
	err := c.get(ctx, fmt.Sprintf("/api/internal/users/%d", id), models.ErrUserNotFound, &payload)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:        payload.ID,
		Name:      payload.Name,
		Email:     payload.Email,
		Role:      models.UserRole(payload.Role),
		Active:    payload.Active,
		SecretKey: payload.SecretKey,
		CreatedAt: payload.CreatedAt,
	}, nil
}
