package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/shopspring/decimal"
)

// CartService applies visitor actions to the cart held by their session.
// Only Add can fail, because it has to find the product first.
type CartService interface {
	Add(ctx context.Context, sess *session.Session, productID models.ID) (cart.Snapshot, error)
	Remove(ctx context.Context, sess *session.Session, productID models.ID) cart.Snapshot
	SetQuantity(ctx context.Context, sess *session.Session, productID models.ID, quantity int) cart.Snapshot
	Clear(ctx context.Context, sess *session.Session) cart.Snapshot
	Snapshot(sess *session.Session) cart.Snapshot
}

type cartService struct {
	catalog CatalogService
	taxRate decimal.Decimal
}

func NewCartService(catalog CatalogService, taxRate decimal.Decimal) CartService {
	return &cartService{catalog: catalog, taxRate: taxRate}
}

func (s *cartService) Add(ctx context.Context, sess *session.Session, productID models.ID) (cart.Snapshot, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return s.Snapshot(sess), err
	}

	snapshot := s.mutate(sess, func(l *cart.Ledger) { l.AddItem(*product) })

	metrics.RecordCartOperation("add")
	middleware.LoggerFromContext(ctx).Info("Item added to cart",
		slog.String("product_id", productID.String()),
		slog.Int("item_count", snapshot.Summary.ItemCount))

	return snapshot, nil
}

func (s *cartService) Remove(ctx context.Context, sess *session.Session, productID models.ID) cart.Snapshot {
	metrics.RecordCartOperation("remove")
	middleware.LoggerFromContext(ctx).Info("Item removed from cart", slog.String("product_id", productID.String()))

	return s.mutate(sess, func(l *cart.Ledger) { l.RemoveItem(productID) })
}

func (s *cartService) SetQuantity(ctx context.Context, sess *session.Session, productID models.ID, quantity int) cart.Snapshot {
	metrics.RecordCartOperation("set_quantity")
	middleware.LoggerFromContext(ctx).Info("Cart quantity changed",
		slog.String("product_id", productID.String()),
		slog.Int("quantity", quantity))

	return s.mutate(sess, func(l *cart.Ledger) { l.SetQuantity(productID, quantity) })
}

func (s *cartService) Clear(ctx context.Context, sess *session.Session) cart.Snapshot {
	metrics.RecordCartOperation("clear")
	middleware.LoggerFromContext(ctx).Info("Cart cleared")

	return s.mutate(sess, func(l *cart.Ledger) { l.Clear() })
}

func (s *cartService) Snapshot(sess *session.Session) cart.Snapshot {
	return s.mutate(sess, func(*cart.Ledger) {})
}

// mutate applies fn and snapshots the result under the same lock, so the
// caller sees exactly the state it produced.
func (s *cartService) mutate(sess *session.Session, fn func(l *cart.Ledger)) cart.Snapshot {
	var snapshot cart.Snapshot
	sess.WithCart(func(l *cart.Ledger) {
		fn(l)
		snapshot = l.Snapshot(s.taxRate)
	})
	return snapshot
}
