package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (_m *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := _m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (_m *CatalogService) GetProduct(ctx context.Context, id models.ID) (*models.Product, error) {
	args := _m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (_m *CatalogService) SpecialOffers(ctx context.Context) ([]models.Product, error) {
	args := _m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (_m *CatalogService) InvalidateProducts(ctx context.Context) {
	_m.Called(ctx)
}

type OrderService struct {
	mock.Mock
}

func (_m *OrderService) Checkout(ctx context.Context, sess *session.Session, req *models.CheckoutRequest) (*service.OrderView, error) {
	args := _m.Called(ctx, sess, req)
	view, _ := args.Get(0).(*service.OrderView)
	return view, args.Error(1)
}

func (_m *OrderService) ListOrders(ctx context.Context, sess *session.Session) ([]service.OrderView, error) {
	args := _m.Called(ctx, sess)
	views, _ := args.Get(0).([]service.OrderView)
	return views, args.Error(1)
}

type AuthService struct {
	mock.Mock
}

func (_m *AuthService) Login(ctx context.Context, sess *session.Session, req *models.LoginRequest) (*models.AuthUser, error) {
	args := _m.Called(ctx, sess, req)
	user, _ := args.Get(0).(*models.AuthUser)
	return user, args.Error(1)
}

func (_m *AuthService) Register(ctx context.Context, req *models.RegisterRequest) error {
	return _m.Called(ctx, req).Error(0)
}

func (_m *AuthService) Logout(ctx context.Context, sess *session.Session) {
	_m.Called(ctx, sess)
}

type AdminService struct {
	mock.Mock
}

func (_m *AdminService) CreateProduct(ctx context.Context, sess *session.Session, req *models.CreateProductRequest) (*models.Product, error) {
	args := _m.Called(ctx, sess, req)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (_m *AdminService) ListAllOrders(ctx context.Context, sess *session.Session) ([]service.OrderView, error) {
	args := _m.Called(ctx, sess)
	views, _ := args.Get(0).([]service.OrderView)
	return views, args.Error(1)
}

func (_m *AdminService) UpdateOrderStatus(ctx context.Context, sess *session.Session, orderID models.ID, status models.OrderStatus) (*models.Order, error) {
	args := _m.Called(ctx, sess, orderID, status)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}
