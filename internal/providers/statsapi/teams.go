package statsapi

import "strings"

// teamIDByAbbr maps the 30 club abbreviations to StatsAPI team ids. Roster
// search depends on this table; an unknown abbreviation just skips the
// roster strategy.
var teamIDByAbbr = map[string]int{
	"ATL": 144,
	"MIA": 146,
	"NYM": 121,
	"PHI": 143,
	"WSH": 120,
	"CHC": 112,
	"CIN": 113,
	"MIL": 158,
	"PIT": 134,
	"STL": 138,
	"ARI": 109,
	"COL": 115,
	"LAD": 119,
	"SD":  135,
	"SF":  137,
	"BAL": 110,
	"BOS": 111,
	"NYY": 147,
	"TB":  139,
	"TOR": 141,
	"CWS": 145,
	"CLE": 114,
	"DET": 116,
	"KC":  118,
	"MIN": 142,
	"HOU": 117,
	"LAA": 108,
	"OAK": 133,
	"SEA": 136,
	"TEX": 140,
}

// TeamID resolves a club abbreviation (case-insensitive) to its StatsAPI
// team id.
func TeamID(abbr string) (int, bool) {
	id, ok := teamIDByAbbr[strings.ToUpper(strings.TrimSpace(abbr))]
	return id, ok
}
