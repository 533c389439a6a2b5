package config

import "time"

// StatsAPIConfig controls how we talk to the MLB StatsAPI.
type StatsAPIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	RetryMax      int
	RetryInterval time.Duration
}

func loadStatsAPI() StatsAPIConfig {
	return StatsAPIConfig{
		BaseURL:       envOrDefault(envStatsAPIBaseURL, defaultStatsAPIBaseURL),
		Timeout:       durationEnvOrDefault(envStatsAPITimeout, defaultStatsAPITimeout),
		RetryMax:      intEnvOrDefault(envRetryMax, defaultRetryMax),
		RetryInterval: durationEnvOrDefault(envRetryInterval, defaultRetryInterval),
	}
}
