package mocks

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/ratelimit"
	"github.com/stretchr/testify/mock"
)

// Cache is a mock of cache.Cache. Use Run to fill the destination on a hit.
type Cache struct {
	mock.Mock
}

func (_m *Cache) Get(ctx context.Context, key string, value any) (bool, error) {
	args := _m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (_m *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return _m.Called(ctx, key, value, ttl).Error(0)
}

func (_m *Cache) Delete(ctx context.Context, key string) error {
	return _m.Called(ctx, key).Error(0)
}

func (_m *Cache) Close() error {
	return _m.Called().Error(0)
}

type Limiter struct {
	mock.Mock
}

func (_m *Limiter) Allow(ctx context.Context, username string) (ratelimit.Decision, error) {
	args := _m.Called(ctx, username)
	decision, _ := args.Get(0).(ratelimit.Decision)
	return decision, args.Error(1)
}

type ReceiptSender struct {
	mock.Mock
}

func (_m *ReceiptSender) Send(ctx context.Context, msg *models.EmailMessage) error {
	return _m.Called(ctx, msg).Error(0)
}
