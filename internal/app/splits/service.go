// Package splits retrieves season and career situational statistics for a
// resolved person id, caching results and aggregating career totals across
// seasons.
package splits

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"mlb-splits-service/internal/cache"
	"mlb-splits-service/internal/domain"
	"mlb-splits-service/internal/logging"
	"mlb-splits-service/internal/metrics"
	"mlb-splits-service/internal/providers"
)

const (
	// fallbackDebutYear stands in when the provider has no debut date on
	// record.
	fallbackDebutYear = 2010
	// minCareerYear floors the career range so one lookup never fans out
	// into an unbounded number of season requests.
	minCareerYear = 1980
)

// Config carries the service's collaborators.
type Config struct {
	Provider providers.StatsProvider
	Store    cache.Store
	Logger   *slog.Logger
	Recorder *metrics.Recorder
	TTL      time.Duration
	Now      func() time.Time
}

// Service fetches situational splits through the cache.
type Service struct {
	provider providers.StatsProvider
	store    cache.Store
	logger   *slog.Logger
	recorder *metrics.Recorder
	ttl      time.Duration
	now      func() time.Time
}

// New constructs a Service.
func New(cfg Config) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		provider: cfg.Provider,
		store:    cfg.Store,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
		ttl:      ttl,
		now:      now,
	}
}

// Fetch retrieves season and career splits concurrently and joins them into
// one bundle. The two retrievals are read-disjoint except for the shared
// cache, so they run as independent goroutines.
func (s *Service) Fetch(ctx context.Context, personID, season int) (domain.SplitsBundle, error) {
	bundle := domain.SplitsBundle{InternalID: personID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		seasonSplits, err := s.Season(gctx, personID, season)
		if err != nil {
			return err
		}
		bundle.SeasonSplits = seasonSplits
		return nil
	})
	g.Go(func() error {
		careerSplits, err := s.Career(gctx, personID)
		if err != nil {
			return err
		}
		bundle.CareerSplits = careerSplits
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.SplitsBundle{}, err
	}
	return bundle, nil
}

// Season returns one season's situational splits, consulting the cache
// first. A non-success provider response here fails the whole lookup; there
// is no weaker answer to fall back to.
func (s *Service) Season(ctx context.Context, personID, season int) (domain.SeasonSplits, error) {
	key := cache.SeasonKey(personID, season)

	var cached domain.SeasonSplits
	hit, err := cache.GetJSON(ctx, s.store, key, &cached)
	if err != nil {
		logging.Warn(s.logger, "season cache read failed", slog.Any("err", err))
	}
	s.recorder.RecordCacheAccess("season", hit)
	if hit {
		return cached, nil
	}

	set, err := s.provider.SituationalSplits(ctx, personID, season)
	if err != nil {
		return domain.SeasonSplits{}, fmt.Errorf("season splits for %d/%d: %w", personID, season, err)
	}

	result := domain.SeasonSplits{Season: season, VsLeft: set.VsLeft, VsRight: set.VsRight}
	if err := cache.SetJSON(ctx, s.store, key, result, s.ttl); err != nil {
		logging.Warn(s.logger, "season cache write failed", slog.Any("err", err))
	}
	return result, nil
}

// Career returns career situational splits aggregated season by season from
// the player's debut year through the current one. No single career-totals
// endpoint is trusted; summing per-season lines is the only path that has
// proven reliable for every player. Years that fail or carry no data add
// nothing and do not abort the loop, so the result is always two concrete
// stat lines, possibly all-zero.
func (s *Service) Career(ctx context.Context, personID int) (domain.CareerSplits, error) {
	key := cache.CareerKey(personID)

	var cached domain.CareerSplits
	hit, err := cache.GetJSON(ctx, s.store, key, &cached)
	if err != nil {
		logging.Warn(s.logger, "career cache read failed", slog.Any("err", err))
	}
	s.recorder.RecordCacheAccess("career", hit)
	if hit {
		return cached, nil
	}

	currentYear := s.now().Year()
	firstYear := s.debutYear(ctx, personID)
	if firstYear > currentYear {
		firstYear = currentYear
	}

	var left, right domain.Accumulator
	// Sequential on purpose: one outstanding request against the provider
	// at a time bounds the load of a worst-case career.
	for year := firstYear; year <= currentYear; year++ {
		set, err := s.provider.SituationalSplits(ctx, personID, year)
		if err != nil {
			logging.Warn(s.logger, "career season skipped",
				slog.Int(logging.FieldPersonID, personID),
				slog.Int(logging.FieldSeason, year),
				slog.Any("err", err),
			)
			continue
		}
		left.Add(set.VsLeft)
		right.Add(set.VsRight)
	}

	result := domain.CareerSplits{VsLeft: left.Finalize(), VsRight: right.Finalize()}
	if err := cache.SetJSON(ctx, s.store, key, result, s.ttl); err != nil {
		logging.Warn(s.logger, "career cache write failed", slog.Any("err", err))
	}
	return result, nil
}

// debutYear resolves the starting year for career aggregation, falling back
// when the provider has nothing on record and flooring the result.
func (s *Service) debutYear(ctx context.Context, personID int) int {
	year := 0
	person, err := s.provider.Person(ctx, personID)
	if err != nil {
		logging.Warn(s.logger, "debut year lookup failed",
			slog.Int(logging.FieldPersonID, personID),
			slog.Any("err", err),
		)
	} else {
		year = person.DebutYear
	}
	if year == 0 {
		year = fallbackDebutYear
	}
	if year < minCareerYear {
		year = minCareerYear
	}
	return year
}
