package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// Pinger is satisfied by the store API client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Endpoints struct {
	StoreAPI Pinger
}

func NewHealthHandler(cfg *config.Config, version string, endpoints *Endpoints) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: true,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "store-api",
				Timeout:   5 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {
					if endpoints.StoreAPI == nil {
						return fmt.Errorf("store api client is not initialized")
					}
					if err := endpoints.StoreAPI.Ping(ctx); err != nil {
						return fmt.Errorf("failed to reach store api: %w", err)
					}
					return nil
				},
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
