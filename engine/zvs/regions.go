package zvs

import (
	"math"
	"sort"
)

// Coverage summarizes how much of a boundary map achieves soft switching.
type Coverage struct {
	ZVSCells        int     `json:"zvs_cells"`
	HardSwitchCells int     `json:"hard_switch_cells"`
	CoveragePercent float64 `json:"zvs_coverage_percent"`
}

// ExtractCoverage counts feasible versus hard-switching cells in a map.
func ExtractCoverage(m BoundaryMap) Coverage {
	var zvs, hard int
	for _, row := range m.Feasible {
		for _, v := range row {
			if v > 0.5 {
				zvs++
			} else {
				hard++
			}
		}
	}
	total := zvs + hard
	var pct float64
	if total > 0 {
		pct = float64(zvs) / float64(total) * 100
	}
	return Coverage{ZVSCells: zvs, HardSwitchCells: hard, CoveragePercent: pct}
}

// Recommendation is a suggested operating point at a target load.
type Recommendation struct {
	PhiDeg      float64 `json:"phi_deg"`
	LoadPercent float64 `json:"load_percent"`
	Margin      float64 `json:"zvs_margin"`
	Rating      string  `json:"rating"`
}

// maxRecommendations caps the list returned by Recommend.
const maxRecommendations = 5

// Recommend returns the best feasible phase-shift points at the load row
// nearest targetLoadPercent, ranked by margin.
func Recommend(m BoundaryMap, targetLoadPercent float64) []Recommendation {
	if len(m.LoadPercent) == 0 {
		return nil
	}

	loadIdx := 0
	bestDist := math.Inf(1)
	for j, lp := range m.LoadPercent {
		if d := math.Abs(lp - targetLoadPercent); d < bestDist {
			bestDist = d
			loadIdx = j
		}
	}

	var recs []Recommendation
	for i, phi := range m.PhiDeg {
		if m.Feasible[loadIdx][i] > 0.5 {
			margin := m.Margin[loadIdx][i]
			rating := "Good"
			if margin > 50 {
				rating = "Excellent"
			}
			recs = append(recs, Recommendation{
				PhiDeg:      phi,
				LoadPercent: m.LoadPercent[loadIdx],
				Margin:      margin,
				Rating:      rating,
			})
		}
	}

	sort.Slice(recs, func(a, b int) bool { return recs[a].Margin > recs[b].Margin })
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
