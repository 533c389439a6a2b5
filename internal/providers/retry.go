package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"mlb-splits-service/internal/domain"
	"mlb-splits-service/internal/logging"
	"mlb-splits-service/internal/metrics"
)

const (
	defaultMaxRetries      = 2
	defaultInitialInterval = 200 * time.Millisecond
)

// retryingProvider wraps a StatsProvider with exponential backoff and
// per-attempt metrics. Non-retryable upstream statuses short-circuit.
type retryingProvider struct {
	inner      StatsProvider
	name       string
	logger     *slog.Logger
	recorder   *metrics.Recorder
	maxRetries uint64
	initial    time.Duration
}

// NewRetryingProvider wraps inner with retries. maxRetries/initial fall back
// to defaults when <= 0.
func NewRetryingProvider(inner StatsProvider, name string, logger *slog.Logger, recorder *metrics.Recorder, maxRetries int, initial time.Duration) StatsProvider {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if initial <= 0 {
		initial = defaultInitialInterval
	}
	return &retryingProvider{
		inner:      inner,
		name:       name,
		logger:     logger,
		recorder:   recorder,
		maxRetries: uint64(maxRetries),
		initial:    initial,
	}
}

func (r *retryingProvider) SearchPeople(ctx context.Context, name string) ([]domain.Person, error) {
	return retryCall(ctx, r, "people/search", func() ([]domain.Person, error) {
		return r.inner.SearchPeople(ctx, name)
	})
}

func (r *retryingProvider) Person(ctx context.Context, personID int) (domain.Person, error) {
	return retryCall(ctx, r, "people", func() (domain.Person, error) {
		return r.inner.Person(ctx, personID)
	})
}

func (r *retryingProvider) Roster(ctx context.Context, teamID int) ([]domain.Person, error) {
	return retryCall(ctx, r, "teams/roster", func() ([]domain.Person, error) {
		return r.inner.Roster(ctx, teamID)
	})
}

func (r *retryingProvider) SituationalSplits(ctx context.Context, personID, season int) (SplitSet, error) {
	return retryCall(ctx, r, "people/stats", func() (SplitSet, error) {
		return r.inner.SituationalSplits(ctx, personID, season)
	})
}

func retryCall[T any](ctx context.Context, r *retryingProvider, endpoint string, fn func() (T, error)) (T, error) {
	operation := func() (T, error) {
		start := time.Now()
		val, err := fn()
		r.recorder.RecordProviderAttempt(r.name, endpoint, time.Since(start), err)
		if err != nil && !Retryable(err) {
			return val, backoff.Permanent(err)
		}
		return val, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initial

	notify := func(err error, wait time.Duration) {
		logging.Warn(r.logger, "provider call retry",
			slog.String("provider", r.name),
			slog.String("endpoint", endpoint),
			slog.Duration("wait", wait),
			slog.Any("err", err),
		)
	}

	return backoff.RetryNotifyWithData(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, r.maxRetries), ctx),
		notify,
	)
}
