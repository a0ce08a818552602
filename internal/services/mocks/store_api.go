package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

// StoreAPI is a mock of storeapi.Client.
type StoreAPI struct {
	mock.Mock
}

func (_m *StoreAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := _m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (_m *StoreAPI) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := _m.Called(ctx, req)
	auth, _ := args.Get(0).(*models.AuthResponse)
	return auth, args.Error(1)
}

func (_m *StoreAPI) Register(ctx context.Context, req *models.RegisterRequest) error {
	return _m.Called(ctx, req).Error(0)
}

func (_m *StoreAPI) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	args := _m.Called(ctx, token)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (_m *StoreAPI) CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error) {
	args := _m.Called(ctx, token, req)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (_m *StoreAPI) ListAllOrders(ctx context.Context, token string) ([]models.Order, error) {
	args := _m.Called(ctx, token)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (_m *StoreAPI) CreateProduct(ctx context.Context, token string, req *models.CreateProductRequest) (*models.Product, error) {
	args := _m.Called(ctx, token, req)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (_m *StoreAPI) UpdateOrderStatus(ctx context.Context, token string, orderID models.ID, status models.OrderStatus) (*models.Order, error) {
	args := _m.Called(ctx, token, orderID, status)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (_m *StoreAPI) Ping(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}
