// Package providers defines how upstream statistics data is fetched and
// normalized, plus decorators layered over those interfaces.
package providers

import (
	"context"

	"mlb-splits-service/internal/domain"
)

// SplitSet carries both situational lines returned by one splits request.
// A nil line means the provider had no split for that situation.
type SplitSet struct {
	VsLeft  *domain.StatLine
	VsRight *domain.StatLine
}

// PersonSearcher runs the provider's free-text person search.
type PersonSearcher interface {
	SearchPeople(ctx context.Context, name string) ([]domain.Person, error)
}

// PersonLookup fetches one person's canonical record by id.
type PersonLookup interface {
	Person(ctx context.Context, personID int) (domain.Person, error)
}

// RosterFetcher fetches a team's current roster by the provider's numeric
// team id.
type RosterFetcher interface {
	Roster(ctx context.Context, teamID int) ([]domain.Person, error)
}

// SplitsFetcher fetches one person's situational hitting splits for one
// regular season.
type SplitsFetcher interface {
	SituationalSplits(ctx context.Context, personID, season int) (SplitSet, error)
}

// StatsProvider combines every upstream capability the service uses.
type StatsProvider interface {
	PersonSearcher
	PersonLookup
	RosterFetcher
	SplitsFetcher
}
