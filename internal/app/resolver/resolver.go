// Package resolver turns a loose player reference (display name, optional
// host-page id, optional team abbreviation) into the statistics provider's
// canonical person id.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mlb-splits-service/internal/cache"
	"mlb-splits-service/internal/domain"
	"mlb-splits-service/internal/logging"
	"mlb-splits-service/internal/metrics"
	"mlb-splits-service/internal/names"
	"mlb-splits-service/internal/providers"
)

// ErrNotFound reports that every resolution strategy came up empty.
var ErrNotFound = errors.New("player not found")

// TeamIDFunc resolves a club abbreviation to the provider's numeric team id.
type TeamIDFunc func(abbr string) (int, bool)

// Config carries the resolver's collaborators and tuning.
type Config struct {
	Provider providers.StatsProvider
	Store    cache.Store
	TeamID   TeamIDFunc
	Logger   *slog.Logger
	Recorder *metrics.Recorder
	Scoring  ScoringTable // zero value falls back to DefaultScoring
	TTL      time.Duration
}

// Resolver resolves player references, caching successful resolutions under
// both the external-id mapping and the name+team composite key.
type Resolver struct {
	provider providers.StatsProvider
	store    cache.Store
	teamID   TeamIDFunc
	logger   *slog.Logger
	recorder *metrics.Recorder
	scoring  ScoringTable
	ttl      time.Duration
}

// New constructs a Resolver.
func New(cfg Config) *Resolver {
	scoring := cfg.Scoring
	if scoring == (ScoringTable{}) {
		scoring = DefaultScoring
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	teamID := cfg.TeamID
	if teamID == nil {
		teamID = func(string) (int, bool) { return 0, false }
	}
	return &Resolver{
		provider: cfg.Provider,
		store:    cfg.Store,
		teamID:   teamID,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
		scoring:  scoring,
		ttl:      ttl,
	}
}

// Resolve runs the strategies in order, short-circuiting on the first hit:
// cached external-id mapping (revalidated), cached name+team key, roster
// scan for the referenced team, then scored free-text search. It returns
// ErrNotFound when everything comes up empty.
func (r *Resolver) Resolve(ctx context.Context, ref domain.PlayerReference) (int, error) {
	start := time.Now()

	if ref.ExternalID != "" {
		if id, ok := r.resolveFromExternalID(ctx, ref); ok {
			r.recorder.RecordResolution(metrics.OutcomeCachedExternal, time.Since(start))
			return id, nil
		}
	}

	nameKey := cache.NameTeamKey(ref.FullName, ref.TeamAbbr)
	var cachedID int
	hit, err := cache.GetJSON(ctx, r.store, nameKey, &cachedID)
	if err != nil {
		logging.Warn(r.logger, "name+team cache read failed", slog.Any("err", err))
	}
	r.recorder.RecordCacheAccess("resolution", hit)
	if hit {
		r.recorder.RecordResolution(metrics.OutcomeCachedName, time.Since(start))
		return cachedID, nil
	}

	if id, ok := r.resolveFromRoster(ctx, ref); ok {
		r.cacheResolution(ctx, ref, id)
		r.recorder.RecordResolution(metrics.OutcomeRoster, time.Since(start))
		return id, nil
	}

	if id, ok := r.resolveFromSearch(ctx, ref); ok {
		r.cacheResolution(ctx, ref, id)
		r.recorder.RecordResolution(metrics.OutcomeSearch, time.Since(start))
		return id, nil
	}

	r.recorder.RecordResolution(metrics.OutcomeNotFound, time.Since(start))
	return 0, ErrNotFound
}

// resolveFromExternalID checks the external-id mapping and revalidates it
// against the provider's canonical name. Mappings can silently drift or
// collide upstream, so a last-name mismatch invalidates both cache keys and
// falls through to the remaining strategies. A transient lookup failure
// keeps the mapping; dropping cache state over a network blip would only
// cost extra searches.
func (r *Resolver) resolveFromExternalID(ctx context.Context, ref domain.PlayerReference) (int, bool) {
	mapKey := cache.ExternalIDKey(ref.ExternalID)

	var mapped int
	hit, err := cache.GetJSON(ctx, r.store, mapKey, &mapped)
	if err != nil {
		logging.Warn(r.logger, "external-id cache read failed", slog.Any("err", err))
	}
	r.recorder.RecordCacheAccess("external_id", hit)
	if !hit {
		return 0, false
	}

	person, err := r.provider.Person(ctx, mapped)
	if err != nil {
		logging.Warn(r.logger, "external-id revalidation skipped",
			slog.Int(logging.FieldPersonID, mapped),
			slog.Any("err", err),
		)
		return mapped, true
	}

	_, wantLast := names.SplitFirstLast(ref.FullName)
	_, gotLast := names.SplitFirstLast(person.FullName)
	if wantLast != "" && wantLast == gotLast {
		return mapped, true
	}

	logging.Warn(r.logger, "external-id mapping invalidated",
		slog.String(logging.FieldPlayer, ref.FullName),
		slog.Int(logging.FieldPersonID, mapped),
		slog.String("canonical_name", person.FullName),
	)
	if err := r.store.Delete(ctx, mapKey); err != nil {
		logging.Warn(r.logger, "cache delete failed", slog.String(logging.FieldCacheKey, mapKey), slog.Any("err", err))
	}
	nameKey := cache.NameTeamKey(ref.FullName, ref.TeamAbbr)
	if err := r.store.Delete(ctx, nameKey); err != nil {
		logging.Warn(r.logger, "cache delete failed", slog.String(logging.FieldCacheKey, nameKey), slog.Any("err", err))
	}
	return 0, false
}

// resolveFromRoster scans the referenced team's current roster. Roster
// membership is authoritative for the current team, which sidesteps
// cross-team name collisions, so it is preferred over free-text search.
func (r *Resolver) resolveFromRoster(ctx context.Context, ref domain.PlayerReference) (int, bool) {
	if ref.TeamAbbr == "" {
		return 0, false
	}
	teamID, ok := r.teamID(ref.TeamAbbr)
	if !ok {
		return 0, false
	}

	roster, err := r.provider.Roster(ctx, teamID)
	if err != nil {
		logging.Warn(r.logger, "roster lookup failed",
			slog.String(logging.FieldTeam, ref.TeamAbbr),
			slog.Any("err", err),
		)
		return 0, false
	}

	targetFull := names.Normalize(ref.FullName)
	targetFirst, targetLast := names.SplitFirstLast(ref.FullName)

	for _, person := range roster {
		if !allowed(person.ID, ref.FullName) {
			continue
		}
		if targetFull != "" && names.Normalize(person.FullName) == targetFull {
			return person.ID, true
		}
		candFirst, candLast := names.SplitFirstLast(person.FullName)
		if targetLast == "" || candLast != targetLast {
			continue
		}
		if candFirst == targetFirst || sameInitial(candFirst, targetFirst) {
			return person.ID, true
		}
	}
	return 0, false
}

// resolveFromSearch runs the free-text strategies in order (full name,
// "Last, First", bare last name), scoring every candidate and keeping the
// single best across strategies. A strategy that fails or returns nothing
// contributes nothing; search stops early once the best score clears the
// confidence threshold.
func (r *Resolver) resolveFromSearch(ctx context.Context, ref domain.PlayerReference) (int, bool) {
	bestID := 0
	bestScore := -1

	for _, term := range searchTerms(ref.FullName) {
		people, err := r.provider.SearchPeople(ctx, term)
		if err != nil {
			logging.Warn(r.logger, "person search failed",
				slog.String("term", term),
				slog.Any("err", err),
			)
			continue
		}

		for _, person := range people {
			if !allowed(person.ID, ref.FullName) {
				continue
			}
			score, ok := r.scoring.Score(person, ref)
			if !ok {
				continue
			}
			if score > bestScore {
				bestID = person.ID
				bestScore = score
				logging.Info(r.logger, "new best search candidate",
					slog.String(logging.FieldPlayer, person.FullName),
					slog.Int(logging.FieldPersonID, person.ID),
					slog.Int("score", score),
				)
			}
		}

		if bestScore >= r.scoring.EarlyStop {
			break
		}
	}

	return bestID, bestID != 0
}

func (r *Resolver) cacheResolution(ctx context.Context, ref domain.PlayerReference, id int) {
	nameKey := cache.NameTeamKey(ref.FullName, ref.TeamAbbr)
	if err := cache.SetJSON(ctx, r.store, nameKey, id, r.ttl); err != nil {
		logging.Warn(r.logger, "cache write failed", slog.String(logging.FieldCacheKey, nameKey), slog.Any("err", err))
	}
	if ref.ExternalID != "" {
		mapKey := cache.ExternalIDKey(ref.ExternalID)
		if err := cache.SetJSON(ctx, r.store, mapKey, id, r.ttl); err != nil {
			logging.Warn(r.logger, "cache write failed", slog.String(logging.FieldCacheKey, mapKey), slog.Any("err", err))
		}
	}
}

// searchTerms builds the ordered strategy list from the raw display name.
func searchTerms(fullName string) []string {
	parts := strings.Fields(fullName)
	if len(parts) < 2 {
		return []string{fullName}
	}
	first, last := parts[0], parts[len(parts)-1]
	return []string{
		fullName,
		fmt.Sprintf("%s, %s", last, first),
		last,
	}
}

func sameInitial(a, b string) bool {
	return a != "" && b != "" && a[0] == b[0]
}

func equalAbbr(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
