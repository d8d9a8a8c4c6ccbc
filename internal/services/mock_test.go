package services

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"cart-ticketing-service/internal/models"
)

// Mock implementations for testing

type mockUserSource struct {
	users         map[int]*models.User
	shouldFailOps map[string]bool
}

func newMockUserSource() *mockUserSource {
	return &mockUserSource{
		users:         make(map[int]*models.User),
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockUserSource) UserByID(ctx context.Context, id int) (*models.User, error) {
	if m.shouldFailOps["UserByID"] {
		return nil, models.ErrUpstreamUnavailable
	}
	user, exists := m.users[id]
	if !exists {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

type mockOrderRepo struct {
	orders        map[int]*models.Order
	nextID        int
	shouldFailOps map[string]bool
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders:        make(map[int]*models.Order),
		nextID:        1,
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockOrderRepo) OrderByID(ctx context.Context, id int) (*models.Order, error) {
	if m.shouldFailOps["OrderByID"] {
		return nil, models.ErrUpstreamUnavailable
	}
	order, exists := m.orders[id]
	if !exists {
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepo) PendingByUser(ctx context.Context, userID int) (*models.Order, error) {
	if m.shouldFailOps["PendingByUser"] {
		return nil, models.ErrUpstreamUnavailable
	}
	for _, order := range m.orders {
		if order.UserID == userID && order.Status == models.OrderPending {
			return order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (m *mockOrderRepo) Create(ctx context.Context, userID int) (*models.Order, error) {
	if m.shouldFailOps["Create"] {
		return nil, errors.New("mock error")
	}
	order := &models.Order{
		ID:        m.nextID,
		UserID:    userID,
		Status:    models.OrderPending,
		SecretKey: base64.StdEncoding.EncodeToString([]byte("mock-order-secret")),
		CreatedAt: time.Now(),
	}
	m.orders[m.nextID] = order
	m.nextID++
	return order, nil
}

func (m *mockOrderRepo) UpdateTotal(ctx context.Context, orderID int, total decimal.Decimal) error {
	if m.shouldFailOps["UpdateTotal"] {
		return errors.New("mock error")
	}
	order, exists := m.orders[orderID]
	if !exists {
		return models.ErrOrderNotFound
	}
	order.TotalAmount = total
	return nil
}

type mockProductSource struct {
	products      map[int]*models.Product
	shouldFailOps map[string]bool
}

func newMockProductSource() *mockProductSource {
	return &mockProductSource{
		products:      make(map[int]*models.Product),
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockProductSource) ProductByID(ctx context.Context, id int) (*models.Product, error) {
	if m.shouldFailOps["ProductByID"] {
		return nil, models.ErrUpstreamUnavailable
	}
	product, exists := m.products[id]
	if !exists {
		return nil, models.ErrProductNotFound
	}
	return product, nil
}

type mockCartRepo struct {
	items         map[int]*models.CartItem
	nextID        int
	shouldFailOps map[string]bool
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{
		items:         make(map[int]*models.CartItem),
		nextID:        1,
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockCartRepo) ItemByID(ctx context.Context, id int) (*models.CartItem, error) {
	if m.shouldFailOps["ItemByID"] {
		return nil, errors.New("mock error")
	}
	item, exists := m.items[id]
	if !exists {
		return nil, models.ErrCartItemNotFound
	}
	return item, nil
}

func (m *mockCartRepo) ItemsByOrder(ctx context.Context, orderID int) ([]*models.CartItem, error) {
	if m.shouldFailOps["ItemsByOrder"] {
		return nil, errors.New("mock error")
	}
	var result []*models.CartItem
	for _, item := range m.items {
		if item.OrderID == orderID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *mockCartRepo) ItemsByUser(ctx context.Context, userID int) ([]*models.CartItem, error) {
	if m.shouldFailOps["ItemsByUser"] {
		return nil, errors.New("mock error")
	}
	var result []*models.CartItem
	for _, item := range m.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *mockCartRepo) ItemFor(ctx context.Context, productID, orderID, userID int) (*models.CartItem, error) {
	if m.shouldFailOps["ItemFor"] {
		return nil, errors.New("mock error")
	}
	for _, item := range m.items {
		if item.ProductID == productID && item.OrderID == orderID && item.UserID == userID {
			return item, nil
		}
	}
	return nil, models.ErrCartItemNotFound
}

func (m *mockCartRepo) Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if m.shouldFailOps["Create"] {
		return nil, errors.New("mock error")
	}
	item.ID = m.nextID
	item.CreatedAt = time.Now()
	m.items[m.nextID] = item
	m.nextID++
	return item, nil
}

func (m *mockCartRepo) UpdateQuantity(ctx context.Context, id, quantity int) error {
	if m.shouldFailOps["UpdateQuantity"] {
		return errors.New("mock error")
	}
	item, exists := m.items[id]
	if !exists {
		return models.ErrCartItemNotFound
	}
	item.Quantity = quantity
	return nil
}

func (m *mockCartRepo) Delete(ctx context.Context, id int) error {
	if m.shouldFailOps["Delete"] {
		return errors.New("mock error")
	}
	if _, exists := m.items[id]; !exists {
		return models.ErrCartItemNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockCartRepo) SaveTicketImage(ctx context.Context, cartItemID int, raster []byte) error {
	if m.shouldFailOps["SaveTicketImage"] {
		return errors.New("mock error")
	}
	item, exists := m.items[cartItemID]
	if !exists {
		return models.ErrCartItemNotFound
	}
	item.QRCode = raster
	return nil
}

func (m *mockCartRepo) TicketImage(ctx context.Context, cartItemID int) ([]byte, error) {
	if m.shouldFailOps["TicketImage"] {
		return nil, errors.New("mock error")
	}
	item, exists := m.items[cartItemID]
	if !exists {
		return nil, models.ErrCartItemNotFound
	}
	return item.QRCode, nil
}
