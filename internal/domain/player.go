package domain

// PlayerReference is the loose player identity supplied by the caller.
// ExternalID is the host page's opaque id for the player (when the hover
// target exposes one); FullName is the only required field.
type PlayerReference struct {
	ExternalID string `json:"externalId,omitempty"`
	FullName   string `json:"fullName"`
	TeamAbbr   string `json:"teamAbbr,omitempty"`
}

// Person is a candidate identity in the statistics provider's namespace.
type Person struct {
	ID        int    `json:"id"`
	FullName  string `json:"fullName"`
	Active    bool   `json:"active"`
	TeamAbbr  string `json:"teamAbbr,omitempty"`
	DebutYear int    `json:"debutYear,omitempty"`
}
