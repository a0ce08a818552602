// Package storeapi is the HTTP client for the remote store API, which owns
// products, orders and accounts.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrUnavailable is returned when the API cannot be reached or the circuit
// breaker is open.
var ErrUnavailable = errors.New("store api unavailable")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store api returned %d: %s", e.StatusCode, e.Message)
}

type Client interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) error
	ListOrders(ctx context.Context, token string) ([]models.Order, error)
	CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error)
	ListAllOrders(ctx context.Context, token string) ([]models.Order, error)
	CreateProduct(ctx context.Context, token string, req *models.CreateProductRequest) (*models.Product, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID models.ID, status models.OrderStatus) (*models.Order, error)
	Ping(ctx context.Context) error
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxFailures uint32
	OpenTimeout time.Duration
	// Transport defaults to http.DefaultTransport; it is always wrapped for tracing.
	Transport http.RoundTripper
}

type client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(cfg Config) Client {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "store-api",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// a rejected request still means the API is up; so does a caller
		// that went away before the answer arrived
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", slog.String("breaker", name), slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})

	return &client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		breaker: breaker,
	}
}

func (c *client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *client) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *client) Register(ctx context.Context, req *models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", req, nil)
}

func (c *client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *client) CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *client) ListAllOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *client) CreateProduct(ctx context.Context, token string, req *models.CreateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/admin/products", token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *client) UpdateOrderStatus(ctx context.Context, token string, orderID models.ID, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	path := "/api/admin/orders/" + url.PathEscape(orderID.String())
	if err := c.do(ctx, http.MethodPut, path, token, &models.UpdateOrderStatusRequest{Status: status}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Ping reports whether the catalog endpoint answers.
func (c *client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/products", "", nil, nil)
}

func (c *client) do(ctx context.Context, method, path, token string, in, out any) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.send(ctx, method, path, token, in)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *client) send(ctx context.Context, method, path, token string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("%s %s: %w", method, path, context.Canceled)
		}
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s response: %w", ErrUnavailable, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}

	return body, nil
}

// errorMessage extracts a human-readable reason from an error body. The API
// answers with either a JSON object or plain text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		return text
	}

	return http.StatusText(status)
}
