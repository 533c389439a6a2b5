package resolver

import "mlb-splits-service/internal/names"

// Person id 472610 keeps surfacing for unrelated players who share the
// surname, so it is quarantined: accept it only when the request is
// literally for that player's name. A single special case, not a general
// mechanism.
const (
	quarantinedPersonID   = 472610
	quarantinedPersonName = "luis garcia"
)

// allowed reports whether a candidate id may be accepted for the requested
// name.
func allowed(personID int, requestedName string) bool {
	if personID != quarantinedPersonID {
		return true
	}
	return names.Normalize(requestedName) == quarantinedPersonName
}
