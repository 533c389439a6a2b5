package statsapi

import "time"

const (
	// ProviderName labels this provider in logs and metrics.
	ProviderName = "statsapi"

	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultHTTPTimeout = 10 * time.Second

	// Situation codes for the two supported splits.
	SitCodeVsLeft  = "vl"
	SitCodeVsRight = "vr"

	// The stat group the splits endpoint files situational data under.
	statGroupSplits = "statsplits"
)
