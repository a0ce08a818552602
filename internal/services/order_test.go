package service_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/pkg/storeapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signedInSession(role string) *session.Session {
	sess := session.New("s-1")
	sess.SignIn(&models.AuthResponse{Token: "tok", Username: "alice", Email: "alice@example.com", Role: role})
	return sess
}

func withLines(sess *session.Session, products ...models.Product) *session.Session {
	sess.WithCart(func(l *cart.Ledger) {
		for _, p := range products {
			l.AddItem(p)
		}
	})
	return sess
}

func placedOrder() *models.Order {
	return &models.Order{
		ID:          "42",
		Status:      models.OrderStatusPending,
		TotalAmount: decimal.NewFromInt(35),
		Items: []models.OrderItem{
			{ProductID: "1", ProductName: "Product 1", Quantity: 2, Price: decimal.NewFromInt(10)},
			{ProductID: "5", ProductName: "Product 5", Quantity: 3, Price: decimal.NewFromInt(5)},
		},
	}
}

func TestOrderService_Checkout(t *testing.T) {
	p1 := newProduct("1", 10, nil)
	p5 := newProduct("5", 5, nil)
	req := &models.CheckoutRequest{ShippingAddress: "1 Main Street"}

	t.Run("Success - Order Placed And Cart Settled", func(t *testing.T) {
		// Arrange
		api, receipts := new(mocks.StoreAPI), new(mocks.ReceiptSender)
		orders := service.NewOrderService(api, receipts, taxRate)
		sess := withLines(signedInSession("USER"), p1, p1, p5, p5, p5)

		expected := &models.CreateOrderRequest{
			Items:           []models.OrderLine{{ProductID: "1", Quantity: 2}, {ProductID: "5", Quantity: 3}},
			ShippingAddress: "1 Main Street",
			PaymentMethod:   "COD",
		}
		api.On("CreateOrder", mock.Anything, "tok", expected).Return(placedOrder(), nil).Once()
		receipts.On("Send", mock.Anything, mock.MatchedBy(func(msg *models.EmailMessage) bool {
			return msg.To == "alice@example.com"
		})).Return(nil).Once()

		// Act
		view, err := orders.Checkout(t.Context(), sess, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.ID("42"), view.ID)
		assert.True(t, view.Summary.Subtotal.Equal(decimal.NewFromInt(35)))
		assert.True(t, view.Summary.Tax.Equal(decimal.RequireFromString("3.5")))
		assert.True(t, view.Summary.Total.Equal(decimal.RequireFromString("38.5")))
		sess.WithCart(func(l *cart.Ledger) { assert.Zero(t, l.Len()) })
		api.AssertExpectations(t)
		receipts.AssertExpectations(t)
	})

	t.Run("Success - Receipt Failure Does Not Fail Checkout", func(t *testing.T) {
		// Arrange
		api, receipts := new(mocks.StoreAPI), new(mocks.ReceiptSender)
		orders := service.NewOrderService(api, receipts, taxRate)
		sess := withLines(signedInSession("USER"), p1)

		api.On("CreateOrder", mock.Anything, "tok", mock.Anything).Return(placedOrder(), nil).Once()
		receipts.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		// Act
		view, err := orders.Checkout(t.Context(), sess, req)

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, view)
	})

	t.Run("Success - Nil Receipt Sender", func(t *testing.T) {
		api := new(mocks.StoreAPI)
		orders := service.NewOrderService(api, nil, taxRate)
		sess := withLines(signedInSession("USER"), p1)

		api.On("CreateOrder", mock.Anything, "tok", mock.MatchedBy(func(r *models.CreateOrderRequest) bool {
			return r.PaymentMethod == "CARD"
		})).Return(placedOrder(), nil).Once()

		_, err := orders.Checkout(t.Context(), sess, &models.CheckoutRequest{ShippingAddress: "1 Main Street", PaymentMethod: "CARD"})

		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("Failure - Not Signed In", func(t *testing.T) {
		// Arrange
		api := new(mocks.StoreAPI)
		orders := service.NewOrderService(api, nil, taxRate)
		sess := withLines(session.New("guest"), p1)

		// Act
		view, err := orders.Checkout(t.Context(), sess, req)

		// Assert
		assert.Nil(t, view)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		api.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		api := new(mocks.StoreAPI)
		orders := service.NewOrderService(api, nil, taxRate)

		// Act
		_, err := orders.Checkout(t.Context(), signedInSession("USER"), req)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		assert.Equal(t, "Your cart is empty", appErr.Message)
		api.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - API Rejects Order Keeps Cart", func(t *testing.T) {
		// Arrange
		api := new(mocks.StoreAPI)
		orders := service.NewOrderService(api, nil, taxRate)
		sess := withLines(signedInSession("USER"), p1, p1)

		api.On("CreateOrder", mock.Anything, "tok", mock.Anything).
			Return(nil, &storeapi.APIError{StatusCode: http.StatusBadRequest, Message: "Insufficient stock for Product 1"}).Once()

		// Act
		_, err := orders.Checkout(t.Context(), sess, req)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		assert.Equal(t, "Insufficient stock for Product 1", appErr.Detail)
		sess.WithCart(func(l *cart.Ledger) { assert.Equal(t, 2, l.ItemCount()) })
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Run("Success - Summaries From Line Items", func(t *testing.T) {
		// Arrange
		api := new(mocks.StoreAPI)
		orders := service.NewOrderService(api, nil, taxRate)
		order := placedOrder()
		order.TotalAmount = decimal.NewFromInt(99)

		api.On("ListOrders", mock.Anything, "tok").Return([]models.Order{*order}, nil).Once()

		// Act
		views, err := orders.ListOrders(t.Context(), signedInSession("USER"))

		// Assert
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.True(t, views[0].Summary.Subtotal.Equal(decimal.NewFromInt(35)))
		assert.Equal(t, 5, views[0].Summary.ItemCount)
		assert.True(t, views[0].TotalAmount.Equal(decimal.NewFromInt(99)))
	})

	t.Run("Success - No Orders", func(t *testing.T) {
		api := new(mocks.StoreAPI)
		api.On("ListOrders", mock.Anything, "tok").Return(nil, nil).Once()

		views, err := service.NewOrderService(api, nil, taxRate).ListOrders(t.Context(), signedInSession("USER"))

		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("Failure - Expired Token", func(t *testing.T) {
		api := new(mocks.StoreAPI)
		api.On("ListOrders", mock.Anything, "tok").Return(nil, &storeapi.APIError{StatusCode: http.StatusUnauthorized, Message: "expired"}).Once()

		_, err := service.NewOrderService(api, nil, taxRate).ListOrders(t.Context(), signedInSession("USER"))

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - Not Signed In", func(t *testing.T) {
		_, err := service.NewOrderService(new(mocks.StoreAPI), nil, taxRate).ListOrders(t.Context(), session.New("guest"))

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})
}
