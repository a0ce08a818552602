package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cart"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/pkg/storeapi"
	"github.com/shopspring/decimal"
)

const defaultPaymentMethod = "COD"

// OrderView is an order as the storefront shows it. Summary is recomputed
// from the stored line items; TotalAmount stays whatever the API charged.
type OrderView struct {
	models.Order
	Summary cart.Summary `json:"summary"`
}

func newOrderViews(orders []models.Order, taxRate decimal.Decimal) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, OrderView{Order: order, Summary: cart.OrderSummary(order.Items, taxRate)})
	}
	return views
}

type OrderService interface {
	Checkout(ctx context.Context, sess *session.Session, req *models.CheckoutRequest) (*OrderView, error)
	ListOrders(ctx context.Context, sess *session.Session) ([]OrderView, error)
}

type orderService struct {
	api      storeapi.Client
	receipts ReceiptSender
	taxRate  decimal.Decimal
}

// NewOrderService accepts a nil receipts sender when e-mail is not configured.
func NewOrderService(api storeapi.Client, receipts ReceiptSender, taxRate decimal.Decimal) OrderService {
	return &orderService{api: api, receipts: receipts, taxRate: taxRate}
}

// Checkout submits the cart as an order. The cart is only settled once the
// API accepted the order; items added while the request was in flight stay.
func (s *orderService) Checkout(ctx context.Context, sess *session.Session, req *models.CheckoutRequest) (*OrderView, error) {
	logger := middleware.LoggerFromContext(ctx)

	token := sess.Token()
	if token == "" {
		return nil, appErrors.UnauthorizedError("Please sign in to place an order")
	}

	var lines []models.OrderLine
	sess.WithCart(func(l *cart.Ledger) { lines = l.OrderLines() })

	if len(lines) == 0 {
		return nil, appErrors.BadRequestError("Your cart is empty")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	order, err := s.api.CreateOrder(ctx, token, &models.CreateOrderRequest{
		Items:           lines,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		metrics.RecordCheckout("failure")
		logger.Error("Failed to place order", slog.Int("lines", len(lines)), slog.Any("error", err))
		return nil, upstreamError(err, "place the order")
	}

	sess.WithCart(func(l *cart.Ledger) { l.Settle(lines) })
	metrics.RecordCheckout("success")

	view := &OrderView{Order: *order, Summary: cart.OrderSummary(order.Items, s.taxRate)}
	logger.Info("Order placed", slog.String("order_id", order.ID.String()), slog.String("status", string(order.Status)))

	s.sendReceipt(ctx, sess.User(), view)

	return view, nil
}

func (s *orderService) ListOrders(ctx context.Context, sess *session.Session) ([]OrderView, error) {
	token := sess.Token()
	if token == "" {
		return nil, appErrors.UnauthorizedError("Please sign in to see your orders")
	}

	orders, err := s.api.ListOrders(ctx, token)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to fetch orders", slog.Any("error", err))
		return nil, upstreamError(err, "load your orders")
	}

	return newOrderViews(orders, s.taxRate), nil
}

// sendReceipt never fails the checkout: the order already exists.
func (s *orderService) sendReceipt(ctx context.Context, user *models.AuthUser, view *OrderView) {
	if s.receipts == nil || user == nil || user.Email == "" {
		return
	}

	if err := s.receipts.Send(ctx, NewReceipt(user, view)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to send order receipt",
			slog.String("order_id", view.ID.String()),
			slog.Any("error", err))
	}
}
