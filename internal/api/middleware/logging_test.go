package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	return &buf
}

func TestLogging(t *testing.T) {
	t.Run("Success - Generates Correlation Id And Logs Status", func(t *testing.T) {
		// Arrange
		logs := captureLogs(t)
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			middleware.LoggerFromContext(r.Context()).Info("inside handler")
			w.WriteHeader(http.StatusCreated)
		}))

		// Act
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", nil))

		// Assert
		assert.Equal(t, http.StatusCreated, rec.Code)
		correlationID := rec.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, correlationID)

		lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
		require.Len(t, lines, 3)

		var inside, completed map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &inside))
		require.NoError(t, json.Unmarshal([]byte(lines[2]), &completed))

		assert.Equal(t, correlationID, inside["correlation_id"])
		assert.Equal(t, "/cart/items", inside["http_path"])
		assert.Equal(t, float64(http.StatusCreated), completed["http_status"])
	})

	t.Run("Success - Keeps Incoming Request Id", func(t *testing.T) {
		// Arrange
		captureLogs(t)
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")

		// Act
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLoggerFromContext(t *testing.T) {
	t.Run("Success - Default Without Logger", func(t *testing.T) {
		assert.Same(t, slog.Default(), middleware.LoggerFromContext(t.Context()))
	})

	t.Run("Success - Stored Logger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

		got := middleware.LoggerFromContext(middleware.WithLogger(t.Context(), logger))

		assert.Same(t, logger, got)
	})
}
