package utils

import (
	"context"
	"time"
)

// DefaultCacheTimeout bounds a single cache round trip.
const DefaultCacheTimeout = 500 * time.Millisecond

func WithCacheTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultCacheTimeout)
}
