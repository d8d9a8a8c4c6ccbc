package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"cart-ticketing-service/internal/models"
)

// CartService handles cart line CRUD. Adding to the cart attaches lines to
// the user's open (pending) order, creating one when none exists; order
// creation is what provisions the order's ticket secret.
type CartService struct {
	orders   OrderRepository
	products ProductSource
	cart     CartRepository
}

// NewCartService creates a new cart service.
func NewCartService(orders OrderRepository, products ProductSource, cart CartRepository) *CartService {
	return &CartService{
		orders:   orders,
		products: products,
		cart:     cart,
	}
}

// AddToCart adds products to the requesting user's open order. Lines for a
// product already in the cart get their quantity bumped instead of a
// duplicate row. Returns the order the lines were attached to.
func (s *CartService) AddToCart(ctx context.Context, reqs []*models.AddToCartRequest) (*models.Order, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: empty cart submission", models.ErrInvalidInput)
	}
	userID := reqs[0].UserID
	for _, req := range reqs {
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
		}
		if req.UserID != userID {
			return nil, fmt.Errorf("%w: mixed user ids in cart submission", models.ErrInvalidInput)
		}
	}

	order, err := s.orders.PendingByUser(ctx, userID)
	if errors.Is(err, models.ErrOrderNotFound) {
		order, err = s.orders.Create(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve open order for user %d: %w", userID, err)
	}

	for _, req := range reqs {
		product, err := s.products.ProductByID(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}

		existing, err := s.cart.ItemFor(ctx, req.ProductID, order.ID, userID)
		switch {
		case err == nil:
			if err := s.cart.UpdateQuantity(ctx, existing.ID, existing.Quantity+req.Quantity); err != nil {
				return nil, fmt.Errorf("failed to update cart item %d: %w", existing.ID, err)
			}
		case errors.Is(err, models.ErrCartItemNotFound):
			item := &models.CartItem{
				UserID:    userID,
				OrderID:   order.ID,
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
				Price:     product.Price,
			}
			if _, err := s.cart.Create(ctx, item); err != nil {
				return nil, fmt.Errorf("failed to create cart item: %w", err)
			}
		default:
			return nil, fmt.Errorf("failed to look up cart item: %w", err)
		}
	}

	if err := s.updateOrderTotal(ctx, order.ID); err != nil {
		return nil, err
	}
	return s.orders.OrderByID(ctx, order.ID)
}

// ItemsByUser lists every cart line belonging to the user.
func (s *CartService) ItemsByUser(ctx context.Context, userID int) ([]*models.CartItem, error) {
	return s.cart.ItemsByUser(ctx, userID)
}

// RemoveItem deletes a cart line and recomputes the order total.
func (s *CartService) RemoveItem(ctx context.Context, cartItemID int) error {
	item, err := s.cart.ItemByID(ctx, cartItemID)
	if err != nil {
		return err
	}
	if err := s.cart.Delete(ctx, cartItemID); err != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", cartItemID, err)
	}
	return s.updateOrderTotal(ctx, item.OrderID)
}

func (s *CartService) updateOrderTotal(ctx context.Context, orderID int) error {
	items, err := s.cart.ItemsByOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to list cart items for order %d: %w", orderID, err)
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if err := s.orders.UpdateTotal(ctx, orderID, total); err != nil {
		return fmt.Errorf("failed to update total for order %d: %w", orderID, err)
	}
	return nil
}
