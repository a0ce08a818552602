package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/pkg/storeapi"
	"github.com/shopspring/decimal"
)

// AdminService only hides admin actions from other visitors; the API checks
// the role again on every call.
type AdminService interface {
	CreateProduct(ctx context.Context, sess *session.Session, req *models.CreateProductRequest) (*models.Product, error)
	ListAllOrders(ctx context.Context, sess *session.Session) ([]OrderView, error)
	UpdateOrderStatus(ctx context.Context, sess *session.Session, orderID models.ID, status models.OrderStatus) (*models.Order, error)
}

type adminService struct {
	api     storeapi.Client
	catalog CatalogService
	taxRate decimal.Decimal
}

func NewAdminService(api storeapi.Client, catalog CatalogService, taxRate decimal.Decimal) AdminService {
	return &adminService{api: api, catalog: catalog, taxRate: taxRate}
}

func requireAdmin(sess *session.Session) (string, error) {
	token := sess.Token()
	if token == "" {
		return "", appErrors.UnauthorizedError("Please sign in")
	}
	if !sess.IsAdmin() {
		return "", appErrors.ForbiddenError("Admin access required")
	}
	return token, nil
}

func (s *adminService) CreateProduct(ctx context.Context, sess *session.Session, req *models.CreateProductRequest) (*models.Product, error) {
	token, err := requireAdmin(sess)
	if err != nil {
		return nil, err
	}

	product, err := s.api.CreateProduct(ctx, token, req)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to create product", slog.String("name", req.Name), slog.Any("error", err))
		return nil, upstreamError(err, "create the product")
	}

	s.catalog.InvalidateProducts(ctx)
	middleware.LoggerFromContext(ctx).Info("Product created", slog.String("product_id", product.ID.String()))

	return product, nil
}

func (s *adminService) ListAllOrders(ctx context.Context, sess *session.Session) ([]OrderView, error) {
	token, err := requireAdmin(sess)
	if err != nil {
		return nil, err
	}

	orders, err := s.api.ListAllOrders(ctx, token)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to fetch all orders", slog.Any("error", err))
		return nil, upstreamError(err, "load orders")
	}

	return newOrderViews(orders, s.taxRate), nil
}

func (s *adminService) UpdateOrderStatus(ctx context.Context, sess *session.Session, orderID models.ID, status models.OrderStatus) (*models.Order, error) {
	token, err := requireAdmin(sess)
	if err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, appErrors.ValidationError("Invalid order status").WithDetail(string(status))
	}

	order, err := s.api.UpdateOrderStatus(ctx, token, orderID, status)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to update order status",
			slog.String("order_id", orderID.String()), slog.Any("error", err))
		return nil, upstreamError(err, "update the order")
	}

	middleware.LoggerFromContext(ctx).Info("Order status updated",
		slog.String("order_id", orderID.String()), slog.String("status", string(status)))

	return order, nil
}
