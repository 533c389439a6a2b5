package config

import "time"

// Supported cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendFile   = "file"
	CacheBackendRedis  = "redis"
)

// CacheConfig selects and tunes the persistent cache backend.
type CacheConfig struct {
	Backend       string
	Path          string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func loadCache() CacheConfig {
	return CacheConfig{
		Backend:       envOrDefault(envCacheBackend, defaultCacheBackend),
		Path:          envOrDefault(envCachePath, defaultCachePath),
		TTL:           durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		RedisAddr:     envOrDefault(envRedisAddr, defaultRedisAddr),
		RedisPassword: envOrDefault(envRedisPassword, ""),
		RedisDB:       intEnvOrDefault(envRedisDB, 0),
	}
}
