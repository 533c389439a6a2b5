package server

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"mlb-splits-service/internal/cache"
	"mlb-splits-service/internal/config"
)

// buildStore constructs the cache backend selected by configuration. The
// returned closer releases backend resources at shutdown; it is nil when
// there is nothing to release. Unknown backends fall back to memory so a
// typo'd env var degrades instead of crashing.
func buildStore(cfg config.CacheConfig, logger *slog.Logger) (cache.Store, func() error) {
	switch cfg.Backend {
	case config.CacheBackendFile:
		return cache.NewFileStore(cfg.Path), nil
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return cache.NewRedisStore(client), client.Close
	case config.CacheBackendMemory:
		return cache.NewMemoryStore(), nil
	default:
		if logger != nil {
			logger.Warn("unknown cache backend, using memory", slog.String("backend", cfg.Backend))
		}
		return cache.NewMemoryStore(), nil
	}
}
