package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/view"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const adminPath = "/admin"

type AdminHandler struct {
	pages
	adminService service.AdminService
	validator    *validator.Validate
}

func NewAdminHandler(adminService service.AdminService, renderer *view.Renderer) *AdminHandler {
	return &AdminHandler{pages: pages{renderer: renderer}, adminService: adminService, validator: utils.NewValidator()}
}

func (h *AdminHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		orders, err := h.adminService.ListAllOrders(r.Context(), sess)
		if err != nil {
			logger.Error("Failed to load admin orders", slog.String("error", err.Error()))
			h.renderError(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, "admin", "Admin", view.AdminData{
			Orders:   orders,
			Statuses: models.AdminOrderStatuses,
		})
	}
}

func (h *AdminHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		req, err := parseProductForm(r)
		if err != nil {
			redirectWithError(w, r, sess, err, adminPath)
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			redirectWithError(w, r, sess, validationFailure(err), adminPath)
			return
		}

		product, err := h.adminService.CreateProduct(r.Context(), sess, req)
		if err != nil {
			redirectWithError(w, r, sess, err, adminPath)
			return
		}

		redirectWithFlash(w, r, sess, session.FlashSuccess, fmt.Sprintf("Product %q created", product.Name), adminPath)
	}
}

func parseProductForm(r *http.Request) (*models.CreateProductRequest, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.PostFormValue("price")))
	if err != nil {
		return nil, appErrors.AddValidationError("price", "must be a number")
	}

	stock, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("stock")))
	if err != nil {
		return nil, appErrors.AddValidationError("stock", "must be a whole number")
	}

	discount := 0
	if raw := strings.TrimSpace(r.PostFormValue("discount")); raw != "" {
		if discount, err = strconv.Atoi(raw); err != nil {
			return nil, appErrors.AddValidationError("discount", "must be a whole number")
		}
	}

	return &models.CreateProductRequest{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Price:       price,
		Stock:       stock,
		Discount:    discount,
	}, nil
}

func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		orderID, err := pathID(r)
		if err != nil {
			redirectWithError(w, r, sess, err, adminPath)
			return
		}

		status := models.OrderStatus(strings.ToUpper(strings.TrimSpace(r.PostFormValue("status"))))

		if _, err := h.adminService.UpdateOrderStatus(r.Context(), sess, orderID, status); err != nil {
			redirectWithError(w, r, sess, err, adminPath)
			return
		}

		redirectWithFlash(w, r, sess, session.FlashSuccess, fmt.Sprintf("Order #%s is now %s", orderID, status), adminPath)
	}
}
