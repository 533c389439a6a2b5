package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrEndpoint = "endpoint"
	AttrScope    = "scope"
	AttrOutcome  = "outcome"
)

// Resolution outcome values.
const (
	OutcomeCachedExternal = "cached_external_id"
	OutcomeCachedName     = "cached_name_team"
	OutcomeRoster         = "roster"
	OutcomeSearch         = "search"
	OutcomeNotFound       = "not_found"
)
