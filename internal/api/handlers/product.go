package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/view"
)

type ProductHandler struct {
	pages
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService, renderer *view.Renderer) *ProductHandler {
	return &ProductHandler{pages: pages{renderer: renderer}, catalogService: catalogService}
}

// Home shows the special offers.
func (h *ProductHandler) Home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		offers, err := h.catalogService.SpecialOffers(r.Context())
		if err != nil {
			logger.Error("Failed to load special offers", slog.String("error", err.Error()))
			h.renderError(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, "home", "Home", view.HomeData{Offers: offers})
	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.catalogService.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to load products", slog.String("error", err.Error()))
			h.renderError(w, r, err)
			return
		}

		logger.Debug("Products loaded", slog.Int("count", len(products)))
		h.render(w, r, http.StatusOK, "products", "Products", view.ProductsData{Products: products})
	}
}
