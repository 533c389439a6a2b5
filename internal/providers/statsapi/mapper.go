package statsapi

import (
	"strconv"
	"strings"

	"mlb-splits-service/internal/domain"
)

func mapPerson(p personResponse) domain.Person {
	person := domain.Person{
		ID:        p.ID,
		FullName:  p.FullName,
		Active:    p.Active,
		DebutYear: debutYear(p.MLBDebutDate),
	}
	if p.CurrentTeam != nil {
		person.TeamAbbr = p.CurrentTeam.Abbreviation
	}
	return person
}

// debutYear extracts the year from an ISO debut date; 0 when absent or
// malformed.
func debutYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// pickSituational walks a stats response down to the split whose situation
// code matches sitCode and maps its hitting stats. Any missing level yields
// nil rather than an error; the splits endpoint simply omits situations a
// player never faced.
func pickSituational(resp statsResponse, sitCode string) *domain.StatLine {
	var group *statGroupResponse
	for i := range resp.Stats {
		if strings.ToLower(resp.Stats[i].Type.DisplayName) == statGroupSplits {
			group = &resp.Stats[i]
			break
		}
	}
	if group == nil {
		return nil
	}
	for _, split := range group.Splits {
		if split.Split == nil || split.Stat == nil {
			continue
		}
		if strings.EqualFold(split.Split.Code, sitCode) {
			return mapStatLine(split.Stat)
		}
	}
	return nil
}

func mapStatLine(stat *hittingStatResponse) *domain.StatLine {
	return &domain.StatLine{
		PlateAppearances: stat.PlateAppearances.Int(),
		AtBats:           stat.AtBats.Int(),
		Hits:             stat.Hits.Int(),
		HomeRuns:         stat.HomeRuns.Int(),
		Walks:            stat.BaseOnBalls.Int(),
		AVG:              stat.AVG.Float(),
		OBP:              stat.OBP.Float(),
		SLG:              stat.SLG.Float(),
		OPS:              stat.OPS.Float(),
	}
}
