package services

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-ticketing-service/internal/models"
	"cart-ticketing-service/internal/ticket"
)

func encodedSecret(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

type ticketServiceFixture struct {
	users    *mockUserSource
	orders   *mockOrderRepo
	products *mockProductSource
	cart     *mockCartRepo
	service  *TicketService
}

func newTicketServiceFixture() *ticketServiceFixture {
	users := newMockUserSource()
	orders := newMockOrderRepo()
	products := newMockProductSource()
	cart := newMockCartRepo()

	return &ticketServiceFixture{
		users:    users,
		orders:   orders,
		products: products,
		cart:     cart,
		service: NewTicketService(
			users, orders, products, cart,
			ticket.NewCipher(), ticket.NewCodec(256), nil,
		),
	}
}

func (f *ticketServiceFixture) seedScenario() {
	f.users.users[1] = &models.User{
		ID:        1,
		Name:      "John",
		SecretKey: encodedSecret("u-secret-16byte"),
	}
	f.orders.orders[1] = &models.Order{
		ID:        1,
		UserID:    1,
		Status:    models.OrderPending,
		SecretKey: encodedSecret("o-secret-16byte"),
	}
	f.products.products[1] = &models.Product{
		ID:    1,
		Name:  "Ticket",
		Price: decimal.NewFromInt(50),
	}
	f.cart.items[1] = &models.CartItem{
		ID:        1,
		UserID:    1,
		OrderID:   1,
		ProductID: 1,
		Quantity:  2,
		Price:     decimal.NewFromInt(50),
	}
	f.cart.nextID = 2
}

func TestTicketService_IssueTickets(t *testing.T) {
	f := newTicketServiceFixture()
	f.seedScenario()

	count, err := f.service.IssueTickets(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, f.cart.items[1].HasTicket(), "raster must be stored on the cart line")
}

func TestTicketService_IssueTickets_PrincipalFailures(t *testing.T) {
	tests := []struct {
		name    string
		userID  int
		orderID int
		setup   func(f *ticketServiceFixture)
		wantErr error
	}{
		{
			name:    "unknown user",
			userID:  99,
			orderID: 1,
			wantErr: models.ErrUserNotFound,
		},
		{
			name:    "unknown order",
			userID:  1,
			orderID: 99,
			wantErr: models.ErrOrderNotFound,
		},
		{
			name:    "unprovisioned user",
			userID:  1,
			orderID: 1,
			setup: func(f *ticketServiceFixture) {
				f.users.users[1].SecretKey = ""
			},
			wantErr: models.ErrUserNotFound,
		},
		{
			name:    "unprovisioned order",
			userID:  1,
			orderID: 1,
			setup: func(f *ticketServiceFixture) {
				f.orders.orders[1].SecretKey = ""
			},
			wantErr: models.ErrOrderNotFound,
		},
		{
			name:    "user service down",
			userID:  1,
			orderID: 1,
			setup: func(f *ticketServiceFixture) {
				f.users.shouldFailOps["UserByID"] = true
			},
			wantErr: models.ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTicketServiceFixture()
			f.seedScenario()
			if tt.setup != nil {
				tt.setup(f)
			}

			count, err := f.service.IssueTickets(context.Background(), tt.userID, tt.orderID)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, count)
		})
	}
}

func TestTicketService_IssueTickets_SkipsUnresolvableProduct(t *testing.T) {
	f := newTicketServiceFixture()
	f.seedScenario()

	// Second line referencing a product the catalog no longer has.
	f.cart.items[2] = &models.CartItem{
		ID:        2,
		UserID:    1,
		OrderID:   1,
		ProductID: 404,
		Quantity:  1,
		Price:     decimal.NewFromInt(10),
	}

	count, err := f.service.IssueTickets(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "sibling lines are independent units of work")
	assert.True(t, f.cart.items[1].HasTicket())
	assert.False(t, f.cart.items[2].HasTicket())
}

func TestTicketService_IssueTickets_OverwritesOnReissue(t *testing.T) {
	f := newTicketServiceFixture()
	f.seedScenario()

	_, err := f.service.IssueTickets(context.Background(), 1, 1)
	require.NoError(t, err)
	first := f.cart.items[1].QRCode

	_, err = f.service.IssueTickets(context.Background(), 1, 1)
	require.NoError(t, err)
	second := f.cart.items[1].QRCode

	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second, "fresh nonce means a fresh raster on every issuance")
}

func TestTicketService_DecodeImage_Unreadable(t *testing.T) {
	f := newTicketServiceFixture()

	_, err := f.service.DecodeImage([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.ErrorIs(t, err, models.ErrUnreadableImage)
}

// End-to-end trust chain: issue, scan, redeem, and reject redemption under
// a mismatched pair.
func TestTicketService_IssueScanRedeem(t *testing.T) {
	f := newTicketServiceFixture()
	f.seedScenario()

	// Another order for the same user, and another user, for the
	// cross-pair rejections.
	f.orders.orders[2] = &models.Order{
		ID:        2,
		UserID:    1,
		Status:    models.OrderPending,
		SecretKey: encodedSecret("other-order-secret"),
	}
	f.users.users[2] = &models.User{
		ID:        2,
		Name:      "Jane",
		SecretKey: encodedSecret("other-user-secret"),
	}

	ctx := context.Background()

	count, err := f.service.IssueTickets(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	raster, err := f.service.TicketImage(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, raster)

	code, err := f.service.DecodeImage(raster)
	require.NoError(t, err)
	require.NotEmpty(t, code)

	result, err := f.service.Redeem(ctx, 1, 1, code)
	require.NoError(t, err)
	assert.Equal(t, "John", result.RedeemedBy)
	assert.Contains(t, result.Payload, "John")
	assert.Contains(t, result.Payload, "Ticket")

	_, err = f.service.Redeem(ctx, 1, 2, code)
	assert.ErrorIs(t, err, models.ErrInvalidTicket, "same user, different order")

	_, err = f.service.Redeem(ctx, 2, 1, code)
	assert.ErrorIs(t, err, models.ErrInvalidTicket, "different user, same order")
}

func TestTicketService_Redeem_PrincipalFailures(t *testing.T) {
	f := newTicketServiceFixture()
	f.seedScenario()

	_, err := f.service.Redeem(context.Background(), 99, 1, "anything")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	_, err = f.service.Redeem(context.Background(), 1, 99, "anything")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}
