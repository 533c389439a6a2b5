package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"
	FieldPlayer     = "player"
	FieldTeam       = "team"
	FieldPersonID   = "person_id"
	FieldSeason     = "season"
	FieldCacheKey   = "cache_key"
)
