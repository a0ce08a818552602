package handlers

import (
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
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/aaravmahajanofficial/storefront/internal/view"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const cartPath = "/cart"

type CartHandler struct {
	pages
	cartService service.CartService
	validator   *validator.Validate
	taxLabel    string
}

func NewCartHandler(cartService service.CartService, renderer *view.Renderer, taxRate decimal.Decimal) *CartHandler {
	return &CartHandler{
		pages:       pages{renderer: renderer},
		cartService: cartService,
		validator:   utils.NewValidator(),
		taxLabel:    percentLabel(taxRate),
	}
}

func (h *CartHandler) ViewCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, "cart", "Cart", view.CartData{
			Cart:     h.cartService.Snapshot(sess),
			SignedIn: sess.IsAuthenticated(),
			TaxLabel: h.taxLabel,
		})
	}
}

// AddItem handles the "Add to cart" button and returns to the page it was pressed on.
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		target := backTo(r, "/products")

		productID, ok := models.ParseID(r.PostFormValue("product_id"))
		if !ok {
			redirectWithError(w, r, sess, appErrors.ValidationError("Field product_id is required"), target)
			return
		}

		if _, err := h.cartService.Add(r.Context(), sess, productID); err != nil {
			redirectWithError(w, r, sess, err, target)
			return
		}

		redirectWithFlash(w, r, sess, session.FlashSuccess, "Added to cart", target)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		productID, err := pathID(r)
		if err != nil {
			redirectWithError(w, r, sess, err, cartPath)
			return
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantity")))
		if err != nil {
			redirectWithError(w, r, sess, appErrors.AddValidationError("quantity", "must be a whole number"), cartPath)
			return
		}

		h.cartService.SetQuantity(r.Context(), sess, productID, quantity)

		redirectWithFlash(w, r, sess, session.FlashSuccess, "Cart updated", cartPath)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		productID, err := pathID(r)
		if err != nil {
			redirectWithError(w, r, sess, err, cartPath)
			return
		}

		h.cartService.Remove(r.Context(), sess, productID)

		redirectWithFlash(w, r, sess, session.FlashSuccess, "Item removed", cartPath)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		h.cartService.Clear(r.Context(), sess)

		redirectWithFlash(w, r, sess, session.FlashSuccess, "Cart cleared", cartPath)
	}
}

// The JSON endpoints below let a page poll or edit the cart without a reload.

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.cartService.Snapshot(sess))
	}
}

func (h *CartHandler) AddItemJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		sess, err := requestSession(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		snapshot, err := h.cartService.Add(r.Context(), sess, req.ProductID)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.String("productId", req.ProductID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}

func (h *CartHandler) UpdateQuantityJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		productID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		response.Success(w, http.StatusOK, h.cartService.SetQuantity(r.Context(), sess, productID, req.Quantity))
	}
}

func (h *CartHandler) RemoveItemJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := requestSession(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		productID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.cartService.Remove(r.Context(), sess, productID))
	}
}
