package service_test

import (
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taxRate = decimal.RequireFromString("0.10")

func TestCartService_Add(t *testing.T) {
	cartService := service.NewCartService(cachedCatalog(t, catalogFixture()), taxRate)

	t.Run("Success - New And Repeated Product", func(t *testing.T) {
		// Arrange
		sess := session.New("s-1")

		// Act
		_, err := cartService.Add(t.Context(), sess, "1")
		require.NoError(t, err)
		snapshot, err := cartService.Add(t.Context(), sess, "1")

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshot.Lines, 1)
		assert.Equal(t, 2, snapshot.Lines[0].Quantity)
		assert.Equal(t, 2, snapshot.Summary.ItemCount)
		assert.True(t, snapshot.Summary.Subtotal.Equal(decimal.NewFromInt(20)))
		assert.True(t, snapshot.Summary.Tax.Equal(decimal.NewFromInt(2)))
	})

	t.Run("Success - Unit Price Is Undiscounted", func(t *testing.T) {
		sess := session.New("s-1")

		snapshot, err := cartService.Add(t.Context(), sess, "2")

		require.NoError(t, err)
		assert.True(t, snapshot.Lines[0].UnitPrice.Equal(decimal.NewFromInt(20)))
	})

	t.Run("Failure - Unknown Product Leaves Cart Unchanged", func(t *testing.T) {
		// Arrange
		sess := session.New("s-1")
		_, err := cartService.Add(t.Context(), sess, "1")
		require.NoError(t, err)

		// Act
		snapshot, err := cartService.Add(t.Context(), sess, "404")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Len(t, snapshot.Lines, 1)
		assert.Equal(t, 1, snapshot.Summary.ItemCount)
	})
}

func TestCartService_Mutations(t *testing.T) {
	cartService := service.NewCartService(cachedCatalog(t, catalogFixture()), taxRate)

	fill := func(t *testing.T) *session.Session {
		t.Helper()
		sess := session.New("s-1")
		for _, id := range []models.ID{"1", "2", "2"} {
			_, err := cartService.Add(t.Context(), sess, id)
			require.NoError(t, err)
		}
		return sess
	}

	t.Run("Success - Remove", func(t *testing.T) {
		sess := fill(t)

		snapshot := cartService.Remove(t.Context(), sess, "1")

		require.Len(t, snapshot.Lines, 1)
		assert.Equal(t, models.ID("2"), snapshot.Lines[0].ProductID)
	})

	t.Run("Success - Remove Absent Is No-op", func(t *testing.T) {
		sess := fill(t)

		snapshot := cartService.Remove(t.Context(), sess, "99")

		assert.Len(t, snapshot.Lines, 2)
		assert.Equal(t, 3, snapshot.Summary.ItemCount)
	})

	t.Run("Success - Set Quantity", func(t *testing.T) {
		sess := fill(t)

		snapshot := cartService.SetQuantity(t.Context(), sess, "2", 5)

		assert.Equal(t, 6, snapshot.Summary.ItemCount)
		assert.True(t, snapshot.Summary.Subtotal.Equal(decimal.NewFromInt(110)))
	})

	t.Run("Success - Set Quantity Zero Removes", func(t *testing.T) {
		sess := fill(t)

		snapshot := cartService.SetQuantity(t.Context(), sess, "2", 0)

		require.Len(t, snapshot.Lines, 1)
		assert.Equal(t, models.ID("1"), snapshot.Lines[0].ProductID)
	})

	t.Run("Success - Clear", func(t *testing.T) {
		sess := fill(t)

		snapshot := cartService.Clear(t.Context(), sess)

		assert.NotNil(t, snapshot.Lines)
		assert.Empty(t, snapshot.Lines)
		assert.True(t, snapshot.Summary.Total.IsZero())
	})

	t.Run("Success - Snapshot Of Empty Session", func(t *testing.T) {
		snapshot := cartService.Snapshot(session.New("empty"))

		assert.Zero(t, snapshot.Summary.ItemCount)
		assert.True(t, snapshot.Summary.Total.IsZero())
		assert.Empty(t, snapshot.Lines)
	})
}
