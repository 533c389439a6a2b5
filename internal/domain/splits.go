// Package domain holds the data model for situational hitting splits and the
// arithmetic used to combine them across seasons.
package domain

import "math"

// StatLine is one player's hitting performance in a single situational split
// (vs. left- or right-handed pitching) over some scope. Counting stats are
// raw sums; rate stats are derived and carry three decimals.
type StatLine struct {
	PlateAppearances int     `json:"pa"`
	AtBats           int     `json:"ab"`
	Hits             int     `json:"h"`
	HomeRuns         int     `json:"hr"`
	Walks            int     `json:"bb"`
	AVG              float64 `json:"avg"`
	OBP              float64 `json:"obp"`
	SLG              float64 `json:"slg"`
	OPS              float64 `json:"ops"`
}

// HasData reports whether the line contains any counting stats. Rate stats
// alone do not count; an all-zero line is indistinguishable from no data.
func (s *StatLine) HasData() bool {
	return s != nil && (s.PlateAppearances > 0 || s.AtBats > 0 || s.Hits > 0 || s.HomeRuns > 0)
}

// SeasonSplits carries both situational lines for one season. A nil line
// means the provider had no split for that situation.
type SeasonSplits struct {
	Season  int       `json:"season"`
	VsLeft  *StatLine `json:"vsLeft"`
	VsRight *StatLine `json:"vsRight"`
}

// CareerSplits carries both situational lines aggregated from debut through
// the current season. Lines are always present, possibly all-zero.
type CareerSplits struct {
	VsLeft  *StatLine `json:"vsLeft"`
	VsRight *StatLine `json:"vsRight"`
}

// SplitsBundle is the full lookup result returned to the caller.
type SplitsBundle struct {
	InternalID   int          `json:"internalId"`
	SeasonSplits SeasonSplits `json:"seasonSplits"`
	CareerSplits CareerSplits `json:"careerSplits"`
}

// Accumulator sums situational lines across seasons. Total bases are not
// reported by the splits endpoint, so each line contributes
// round(slg * ab) instead; the rate stats are recomputed at Finalize rather
// than averaged, which keeps aggregation order-independent.
type Accumulator struct {
	pa, ab, h, hr, bb, tb int
}

// Add folds one line into the running totals. A nil line is a no-op, so
// empty seasons can be fed through unconditionally.
func (a *Accumulator) Add(line *StatLine) {
	if line == nil {
		return
	}
	a.pa += line.PlateAppearances
	a.ab += line.AtBats
	a.h += line.Hits
	a.hr += line.HomeRuns
	a.bb += line.Walks
	a.tb += int(math.Round(line.SLG * float64(line.AtBats)))
}

// Finalize computes the derived rate stats from the summed counts:
// avg = h/ab, obp = (h+bb)/pa, slg = tb/ab, ops = obp+slg, each 0 when its
// denominator is 0 and rounded to three decimals. An accumulator that saw no
// data finalizes to an all-zero line.
func (a Accumulator) Finalize() *StatLine {
	var avg, obp, slg float64
	if a.ab > 0 {
		avg = float64(a.h) / float64(a.ab)
		slg = float64(a.tb) / float64(a.ab)
	}
	if a.pa > 0 {
		obp = float64(a.h+a.bb) / float64(a.pa)
	}
	return &StatLine{
		PlateAppearances: a.pa,
		AtBats:           a.ab,
		Hits:             a.h,
		HomeRuns:         a.hr,
		Walks:            a.bb,
		AVG:              RoundRate(avg),
		OBP:              RoundRate(obp),
		SLG:              RoundRate(slg),
		OPS:              RoundRate(obp + slg),
	}
}

// Aggregate combines any number of situational lines into one. Aggregating
// zero lines yields an all-zero result.
func Aggregate(lines []*StatLine) *StatLine {
	var acc Accumulator
	for _, line := range lines {
		acc.Add(line)
	}
	return acc.Finalize()
}

// RoundRate rounds a rate stat to three decimal places.
func RoundRate(v float64) float64 {
	return math.Round(v*1000) / 1000
}
