package statsapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type searchResponse struct {
	People []personResponse `json:"people"`
}

type peopleResponse struct {
	People []personResponse `json:"people"`
}

type personResponse struct {
	ID           int           `json:"id"`
	FullName     string        `json:"fullName"`
	Active       bool          `json:"active"`
	CurrentTeam  *teamResponse `json:"currentTeam"`
	MLBDebutDate string        `json:"mlbDebutDate"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
}

type rosterResponse struct {
	Roster []rosterEntryResponse `json:"roster"`
}

type rosterEntryResponse struct {
	Person personResponse `json:"person"`
}

type statsResponse struct {
	Stats []statGroupResponse `json:"stats"`
}

type statGroupResponse struct {
	Type   statTypeResponse `json:"type"`
	Splits []splitResponse  `json:"splits"`
}

type statTypeResponse struct {
	DisplayName string `json:"displayName"`
}

type splitResponse struct {
	Split *splitCodeResponse   `json:"split"`
	Stat  *hittingStatResponse `json:"stat"`
}

type splitCodeResponse struct {
	Code string `json:"code"`
}

type hittingStatResponse struct {
	PlateAppearances flexNumber `json:"plateAppearances"`
	AtBats           flexNumber `json:"atBats"`
	Hits             flexNumber `json:"hits"`
	HomeRuns         flexNumber `json:"homeRuns"`
	BaseOnBalls      flexNumber `json:"baseOnBalls"`
	AVG              flexNumber `json:"avg"`
	OBP              flexNumber `json:"obp"`
	SLG              flexNumber `json:"slg"`
	OPS              flexNumber `json:"ops"`
}

// flexNumber tolerates the API's mixed numeric encodings: counting stats
// arrive as JSON numbers while rate stats arrive as strings (".288").
// Missing, null and non-numeric values all decode to 0.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	if raw == "" {
		*f = 0
		return nil
	}
	// StatsAPI omits the leading zero on rates; strconv accepts ".288".
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexNumber(val)
	return nil
}

func (f flexNumber) Int() int {
	return int(f)
}

func (f flexNumber) Float() float64 {
	return float64(f)
}
