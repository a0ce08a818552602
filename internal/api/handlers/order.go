package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/view"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const ordersPath = "/orders"

type OrderHandler struct {
	pages
	orderService service.OrderService
	validator    *validator.Validate
	taxLabel     string
}

func NewOrderHandler(orderService service.OrderService, renderer *view.Renderer, taxRate decimal.Decimal) *OrderHandler {
	return &OrderHandler{
		pages:        pages{renderer: renderer},
		orderService: orderService,
		validator:    utils.NewValidator(),
		taxLabel:     percentLabel(taxRate),
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), sess)
		if err != nil {
			logger.Error("Failed to load orders", slog.String("error", err.Error()))
			h.renderError(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, "orders", "My orders", view.OrdersData{Orders: orders, TaxLabel: h.taxLabel})
	}
}

// Checkout places an order for the whole cart. Failures return to the cart
// with the cart untouched.
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		req := models.CheckoutRequest{
			ShippingAddress: strings.TrimSpace(r.PostFormValue("shipping_address")),
			PaymentMethod:   strings.TrimSpace(r.PostFormValue("payment_method")),
		}

		if err := utils.ValidateStruct(h.validator, &req); err != nil {
			redirectWithError(w, r, sess, validationFailure(err), cartPath)
			return
		}

		order, err := h.orderService.Checkout(r.Context(), sess, &req)
		if err != nil {
			redirectWithError(w, r, sess, err, cartPath)
			return
		}

		logger.Info("Order placed", slog.String("orderId", order.ID.String()))
		redirectWithFlash(w, r, sess, session.FlashSuccess, fmt.Sprintf("Order #%s placed", order.ID), ordersPath)
	}
}
