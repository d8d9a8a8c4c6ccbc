package services

import (
	"context"

	"github.com/shopspring/decimal"

	"cart-ticketing-service/internal/models"
)

// UserSource resolves users. Implementations return models.ErrUserNotFound
// when the user is absent and models.ErrUpstreamUnavailable when the lookup
// itself failed (remote collaborator down, database error).
type UserSource interface {
	UserByID(ctx context.Context, id int) (*models.User, error)
}

// OrderSource resolves orders, with the same error contract as UserSource
// (models.ErrOrderNotFound / models.ErrUpstreamUnavailable).
type OrderSource interface {
	OrderByID(ctx context.Context, id int) (*models.Order, error)
}

// ProductSource resolves product display data for ticket payloads
// (models.ErrProductNotFound / models.ErrUpstreamUnavailable).
type ProductSource interface {
	ProductByID(ctx context.Context, id int) (*models.Product, error)
}

// CartRepository handles cart line persistence. Ticket rasters live as a
// blob on the cart item row; nothing else about a ticket is persisted.
type CartRepository interface {
	ItemByID(ctx context.Context, id int) (*models.CartItem, error)
	ItemsByOrder(ctx context.Context, orderID int) ([]*models.CartItem, error)
	ItemsByUser(ctx context.Context, userID int) ([]*models.CartItem, error)
	ItemFor(ctx context.Context, productID, orderID, userID int) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id, quantity int) error
	Delete(ctx context.Context, id int) error
	SaveTicketImage(ctx context.Context, cartItemID int, raster []byte) error
	TicketImage(ctx context.Context, cartItemID int) ([]byte, error)
}

// OrderRepository extends order resolution with the writes the cart
// service needs. Created orders are provisioned with a fresh secret key.
type OrderRepository interface {
	OrderSource
	PendingByUser(ctx context.Context, userID int) (*models.Order, error)
	Create(ctx context.Context, userID int) (*models.Order, error)
	UpdateTotal(ctx context.Context, orderID int, total decimal.Decimal) error
}

// TicketServiceInterface is the boundary the rest of the application calls.
type TicketServiceInterface interface {
	IssueTickets(ctx context.Context, userID, orderID int) (int, error)
	TicketImage(ctx context.Context, cartItemID int) ([]byte, error)
	DecodeImage(raster []byte) (string, error)
	Redeem(ctx context.Context, userID, orderID int, code string) (*RedeemResult, error)
}

// CartServiceInterface defines the cart operations exposed over HTTP.
type CartServiceInterface interface {
	AddToCart(ctx context.Context, reqs []*models.AddToCartRequest) (*models.Order, error)
	ItemsByUser(ctx context.Context, userID int) ([]*models.CartItem, error)
	RemoveItem(ctx context.Context, cartItemID int) error
}
