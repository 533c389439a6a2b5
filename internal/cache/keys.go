package cache

import "fmt"

// Key prefixes namespace the one shared store. The splits keys carry a
// format version so a payload change can ship without colliding with stale
// entries; season and career are versioned independently.
const (
	externalIDPrefix = "map:externalid:"
	nameTeamPrefix   = "id:"
	seasonVersion    = "v3"
	careerVersion    = "v3"
)

// ExternalIDKey maps the host page's player id to a provider person id.
func ExternalIDKey(externalID string) string {
	return externalIDPrefix + externalID
}

// NameTeamKey is the composite resolution key for a display name plus an
// optional team abbreviation.
func NameTeamKey(fullName, teamAbbr string) string {
	return fmt.Sprintf("%s%s|%s", nameTeamPrefix, fullName, teamAbbr)
}

// SeasonKey caches one person's situational splits for one season.
func SeasonKey(personID, season int) string {
	return fmt.Sprintf("splits:season:%s:%d:%d", seasonVersion, personID, season)
}

// CareerKey caches one person's aggregated career splits.
func CareerKey(personID int) string {
	return fmt.Sprintf("splits:career:%s:%d", careerVersion, personID)
}
