package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/cart"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/pkg/storeapi"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id models.ID) (*models.Product, error)
	SpecialOffers(ctx context.Context) ([]models.Product, error)
	InvalidateProducts(ctx context.Context)
}

type catalogService struct {
	api         storeapi.Client
	cache       cache.Cache
	ttl         time.Duration
	offersLimit int
}

func NewCatalogService(api storeapi.Client, cache cache.Cache, ttl time.Duration, offersLimit int) CatalogService {
	return &catalogService{api: api, cache: cache, ttl: ttl, offersLimit: offersLimit}
}

// ListProducts reads through the cache. The cache is an optimisation only:
// its failures are logged and the API is asked instead.
func (s *catalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	var products []models.Product

	found, err := s.cacheGet(ctx, &products)
	if err != nil {
		logger.Warn("Product cache read failed", slog.Any("error", err))
	} else if found {
		logger.Debug("Product cache hit", slog.Int("count", len(products)))
		return products, nil
	}

	products, err = s.api.ListProducts(ctx)
	if err != nil {
		logger.Error("Failed to fetch products", slog.Any("error", err))
		return nil, upstreamError(err, "load products")
	}

	if products == nil {
		products = []models.Product{}
	}

	if err := s.cacheSet(ctx, products); err != nil {
		logger.Warn("Product cache write failed", slog.Any("error", err))
	}

	return products, nil
}

func (s *catalogService) cacheGet(ctx context.Context, products *[]models.Product) (bool, error) {
	cacheCtx, cancel := utils.WithCacheTimeout(ctx)
	defer cancel()

	return s.cache.Get(cacheCtx, cache.ProductListKey, products)
}

func (s *catalogService) cacheSet(ctx context.Context, products []models.Product) error {
	cacheCtx, cancel := utils.WithCacheTimeout(ctx)
	defer cancel()

	return s.cache.Set(cacheCtx, cache.ProductListKey, products, s.ttl)
}

func (s *catalogService) GetProduct(ctx context.Context, id models.ID) (*models.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	return nil, appErrors.NotFoundError("Product not found").WithDetail(id.String())
}

func (s *catalogService) SpecialOffers(ctx context.Context) ([]models.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	return cart.SpecialOffers(products, s.offersLimit), nil
}

func (s *catalogService) InvalidateProducts(ctx context.Context) {
	cacheCtx, cancel := utils.WithCacheTimeout(ctx)
	defer cancel()

	if err := s.cache.Delete(cacheCtx, cache.ProductListKey); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed", slog.Any("error", err))
	}
}
