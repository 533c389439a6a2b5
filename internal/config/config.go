// Package config loads runtime configuration from environment variables.
package config

// Config holds runtime configuration for the server.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	StatsAPI  StatsAPIConfig
	Cache     CacheConfig
	Metrics   MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:      envOrDefault(envPort, defaultPort),
		LogLevel:  envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat: envOrDefault(envLogFormat, defaultLogFormat),
		StatsAPI:  loadStatsAPI(),
		Cache:     loadCache(),
		Metrics:   loadMetrics(),
	}
}
