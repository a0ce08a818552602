// Package ratelimit counts login attempts per username in a Redis sorted set
// and refuses attempts once a sliding window is full.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, username string) (Decision, error)
}

type redisLimiter struct {
	client *redis.Client
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, cfg config.RateConfig) Limiter {
	return newRedisLimiter(client, cfg, time.Now)
}

func newRedisLimiter(client *redis.Client, cfg config.RateConfig, now func() time.Time) *redisLimiter {
	return &redisLimiter{client: client, cfg: cfg, now: now}
}

func Key(username string) string {
	return cache.Key(cache.LoginAttemptsPrefix, username)
}

/*
	login_attempts:alice
	---------------------------------------
	| Score (unix ms) | Member (unix ns)  |
	---------------------------------------
	| 1700000000000   | 1700000000000123  |
	| 1700000020000   | 1700000020000456  |

	Every attempt is recorded, allowed or not, so hammering the form keeps
	the window full.
*/

func (l *redisLimiter) Allow(ctx context.Context, username string) (Decision, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := Key(username)
	now := l.now()
	window := l.cfg.WindowSize
	windowStart := now.Add(-window).UnixMilli()

	pipe := l.client.Pipeline()

	// drop attempts that fell out of the window
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return Decision{}, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	if attempts <= l.cfg.MaxAttempts {
		remaining := int(l.cfg.MaxAttempts - attempts)
		logger.Debug("Rate limit check passed", slog.String("username", username), slog.Int64("attempts", attempts), slog.Int("remaining", remaining))
		return Decision{Allowed: true, Remaining: remaining}, nil
	}

	oldest, err := l.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		logger.Error("Failed to get oldest attempt time for rate limit", slog.String("key", key), slog.Any("error", err))
		return Decision{RetryAfter: window}, nil
	}

	oldestAt := time.UnixMilli(int64(oldest[0].Score))
	retryAfter := max(oldestAt.Add(window).Sub(now), 0)

	logger.Warn("Rate limit exceeded for user", slog.String("username", username), slog.Int64("attempts", attempts))
	return Decision{RetryAfter: retryAfter}, nil
}
