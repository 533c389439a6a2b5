package resolver

import (
	"mlb-splits-service/internal/domain"
	"mlb-splits-service/internal/names"
)

// ScoringTable weights the signals used to rank free-text search candidates.
// Exact-name and team carry the most weight; active status only breaks ties.
type ScoringTable struct {
	ExactName    int
	LastName     int
	FirstName    int
	TeamMatch    int
	ActiveRoster int
	// EarlyStop is the score at which search stops trying further
	// strategies; an exact name plus matching team clears it.
	EarlyStop int
}

// DefaultScoring is the tuning in production use.
var DefaultScoring = ScoringTable{
	ExactName:    20,
	LastName:     10,
	FirstName:    8,
	TeamMatch:    15,
	ActiveRoster: 2,
	EarlyStop:    35,
}

// Score ranks one search candidate against the requested reference. The
// second return is false when the candidate is rejected outright: a
// candidate whose normalized last name differs from the requested one can
// never be the right player, no matter what the other signals add up to.
func (t ScoringTable) Score(person domain.Person, ref domain.PlayerReference) (int, bool) {
	targetFirst, targetLast := names.SplitFirstLast(ref.FullName)
	candFirst, candLast := names.SplitFirstLast(person.FullName)

	if targetLast == "" || candLast != targetLast {
		return 0, false
	}

	score := t.LastName
	if names.Normalize(person.FullName) == names.Normalize(ref.FullName) {
		score += t.ExactName
	}
	if targetFirst != "" && candFirst == targetFirst {
		score += t.FirstName
	}
	if ref.TeamAbbr != "" && equalAbbr(person.TeamAbbr, ref.TeamAbbr) {
		score += t.TeamMatch
	}
	if person.Active {
		score += t.ActiveRoster
	}
	return score, true
}
