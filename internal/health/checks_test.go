package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func testConfig() *config.Config {
	return &config.Config{RedisConnect: config.RedisConnect{Host: "127.0.0.1", Port: "1"}}
}

func TestNewHealthHandler(t *testing.T) {
	t.Run("Success - Store API Up, Redis Skipped", func(t *testing.T) {
		// Arrange
		h, err := health.NewHealthHandler(testConfig(), "test", &health.Endpoints{
			StoreAPI: pingerFunc(func(context.Context) error { return nil }),
		})
		require.NoError(t, err)

		// Act
		rec := httptest.NewRecorder()
		h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"Partially Available"`)
	})

	t.Run("Failure - Store API Down", func(t *testing.T) {
		// Arrange
		h, err := health.NewHealthHandler(testConfig(), "test", &health.Endpoints{
			StoreAPI: pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
		})
		require.NoError(t, err)

		// Act
		rec := httptest.NewRecorder()
		h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "store-api")
	})
}
