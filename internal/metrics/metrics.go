// Package metrics captures lightweight in-memory counters mirrored into
// OpenTelemetry instruments when telemetry is enabled.
package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type cacheStats struct {
	hits   int
	misses int
}

// Recorder captures provider, cache and resolution metrics. A nil Recorder
// is safe to use everywhere and records nothing.
type Recorder struct {
	mu       sync.Mutex
	provider map[string]*providerStats
	cache    map[string]*cacheStats
	resolves map[string]int
	otel     *otelInstruments
}

// NewRecorder returns a Recorder without telemetry export.
func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		provider: make(map[string]*providerStats),
		cache:    make(map[string]*cacheStats),
		resolves: make(map[string]int),
		otel:     otel,
	}
}

// RecordProviderAttempt counts one upstream call and its latency.
func (r *Recorder) RecordProviderAttempt(provider, endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	stats := r.ensureProvider(provider + ":" + endpoint)

	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	r.otel.recordProviderAttempt(provider, endpoint, duration, err)
}

// RecordCacheAccess counts a hit or miss for one cache scope
// (e.g. "resolution", "season", "career").
func (r *Recorder) RecordCacheAccess(scope string, hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats, ok := r.cache[scope]
	if !ok {
		stats = &cacheStats{}
		r.cache[scope] = stats
	}
	if hit {
		stats.hits++
	} else {
		stats.misses++
	}
	r.mu.Unlock()

	r.otel.recordCacheAccess(scope, hit)
}

// RecordResolution counts one identity resolution by outcome
// (e.g. "cached", "roster", "search", "not_found").
func (r *Recorder) RecordResolution(outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.resolves[outcome]++
	r.mu.Unlock()

	r.otel.recordResolution(outcome, duration)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns total attempts recorded for provider:endpoint.
func (r *Recorder) ProviderCalls(key string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.provider[key]; ok {
		return stats.calls
	}
	return 0
}

// ProviderErrors returns total failed attempts recorded for provider:endpoint.
func (r *Recorder) ProviderErrors(key string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.provider[key]; ok {
		return stats.errors
	}
	return 0
}

// CacheHits returns hit/miss counts for a scope.
func (r *Recorder) CacheHits(scope string) (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.cache[scope]; ok {
		return stats.hits, stats.misses
	}
	return 0, 0
}

// Resolutions returns the count recorded for an outcome.
func (r *Recorder) Resolutions(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolves[outcome]
}

func (r *Recorder) ensureProvider(key string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.provider[key]
	if !ok {
		stats = &providerStats{}
		r.provider[key] = stats
	}
	return stats
}
