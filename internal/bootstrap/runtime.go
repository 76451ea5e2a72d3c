// Package bootstrap wires together runtime dependencies for the cmd layer.
package bootstrap

import (
	"context"
	"fmt"

	"resonate/internal/cache"
	"resonate/internal/config"
	"resonate/internal/database"
	"resonate/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemo bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemo {
		if err := seed.Demo(db, seed.DefaultOptions()); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		// Fresh audios change the anonymous chart
		cache.InvalidateAnonFeed(context.Background())
	}

	return db, r, nil
}
