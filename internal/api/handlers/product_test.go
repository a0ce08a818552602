package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupProductHandler(t *testing.T) (*handlers.ProductHandler, *mocks.CatalogService) {
	t.Helper()

	catalog := new(mocks.CatalogService)

	return handlers.NewProductHandler(catalog, newRenderer(t)), catalog
}

func TestProductHandler_Home(t *testing.T) {
	t.Run("Success - Offers And Cart Badge", func(t *testing.T) {
		// Arrange
		handler, catalog := setupProductHandler(t)
		discount := 25
		offer := product("3", 40)
		offer.Discount = &discount
		catalog.On("SpecialOffers", mock.Anything).Return([]models.Product{*offer}, nil).Once()

		sess := sessionWith(product("1", 10), product("1", 10))
		sess.AddFlash(session.FlashSuccess, "Welcome back, alice!")
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/", nil, sess, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.Home().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Product 3")
		assert.Contains(t, body, "$30.00")
		assert.Contains(t, body, `<span class="badge">2</span>`)
		assert.Contains(t, body, "Welcome back, alice!")
		assert.Empty(t, sess.PopFlashes(), "flashes are shown once")
		catalog.AssertExpectations(t)
	})

	t.Run("Success - No Offers", func(t *testing.T) {
		// Arrange
		handler, catalog := setupProductHandler(t)
		catalog.On("SpecialOffers", mock.Anything).Return([]models.Product{}, nil).Once()
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/", nil, session.New("s-1"), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.Home().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No special offers right now.")
	})

	t.Run("Failure - Store API Unavailable", func(t *testing.T) {
		// Arrange
		handler, catalog := setupProductHandler(t)
		catalog.On("SpecialOffers", mock.Anything).
			Return(nil, appErrors.ServiceUnavailableError("The store is temporarily unavailable")).Once()
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/", nil, session.New("s-1"), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.Home().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "The store is temporarily unavailable")
	})
}

func TestProductHandler_ListProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler, catalog := setupProductHandler(t)
		catalog.On("ListProducts", mock.Anything).Return([]models.Product{*product("1", 10), *product("2", 20)}, nil).Once()
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/products", nil, session.New("s-1"), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Product 1")
		assert.Contains(t, body, "Product 2")
		assert.Contains(t, body, `name="product_id" value="2"`)
		catalog.AssertExpectations(t)
	})

	t.Run("Failure - Upstream Error", func(t *testing.T) {
		// Arrange
		handler, catalog := setupProductHandler(t)
		catalog.On("ListProducts", mock.Anything).Return(nil, appErrors.ThirdPartyError("Failed to load products")).Once()
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/products", nil, session.New("s-1"), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to load products")
	})
}

func TestProductHandler_NotFound(t *testing.T) {
	// Arrange
	handler, _ := setupProductHandler(t)
	req := testutils.CreateTestRequestWithSession(http.MethodGet, "/nowhere", nil, session.New("s-1"), nil)
	rec := httptest.NewRecorder()

	// Act
	handler.NotFound().ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}
