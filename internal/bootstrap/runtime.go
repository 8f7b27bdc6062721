// Package bootstrap wires process-level dependencies for the binaries.
package bootstrap

import (
	"fmt"

	"waypoint/internal/cache"
	"waypoint/internal/config"
	"waypoint/internal/database"
	"waypoint/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedBuiltIns upserts the permanent achievement catalog after connecting.
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis and optionally seeds built-in data.
// The Redis client may be nil when Redis is unreachable; callers degrade
// gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedBuiltIns {
		if err := seed.Achievements(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed achievement catalog: %w", err)
		}
	}

	return db, r, nil
}
