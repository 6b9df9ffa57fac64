package kv

import (
	"fmt"

	"creatitube/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Open builds the store selected by cfg.StoreBackend. The redis backend
// reuses redisClient; the other backends own their connections.
func Open(cfg *config.Config, redisClient *redis.Client) (Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis store requires a redis client")
		}
		return NewRedisStore(redisClient), nil
	case "postgres":
		db, err := OpenPostgres(cfg.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store := NewGormStore(db)
		if err := store.Migrate(); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to migrate kv_records: %w", err)
		}
		return store, nil
	case "badger":
		return OpenBadger(cfg.BadgerPath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
