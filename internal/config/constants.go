package config

import "time"

const (
	envPort      = "PORT"
	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"

	envStatsAPIBaseURL = "STATSAPI_BASE_URL"
	envStatsAPITimeout = "STATSAPI_TIMEOUT"
	envRetryMax        = "STATSAPI_RETRY_MAX"
	envRetryInterval   = "STATSAPI_RETRY_INTERVAL"

	envCacheBackend  = "CACHE_BACKEND"
	envCachePath     = "CACHE_PATH"
	envCacheTTL      = "CACHE_TTL"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort      = "4000"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	defaultStatsAPIBaseURL = "https://statsapi.mlb.com/api/v1"
	// Conservative upstream timeout; StatsAPI is usually sub-second.
	defaultStatsAPITimeout = 10 * Duration(time.Second)
	defaultRetryMax        = 2
	defaultRetryInterval   = 200 * Duration(time.Millisecond)

	defaultCacheBackend = CacheBackendMemory
	defaultCachePath    = "splits-cache.json"
	defaultCacheTTL     = 24 * Duration(time.Hour)
	defaultRedisAddr    = "localhost:6379"

	defaultMetricsPort = "9090"
)
