package engine

import (
	"math"
	"sort"
)

// RankWeights are the scoring policy knobs. They are policy, not mechanism:
// product owners tune these, so they are configuration rather than literals.
type RankWeights struct {
	Cost     float64 `yaml:"cost"`
	Walk     float64 `yaml:"walk"`
	Tram     float64 `yaml:"tram"`
	Tier     float64 `yaml:"tier"`
	Baseline float64 `yaml:"baseline"`
}

// DefaultRankWeights is the shipped scoring policy.
var DefaultRankWeights = RankWeights{
	Cost:     0.40,
	Walk:     0.35,
	Tram:     0.10,
	Tier:     0.10,
	Baseline: 0.05,
}

// Rank scores recommendations and returns them sorted best first.
//
// Cost and walking distance are normalized against the maximum observed in
// this result set (denominator floored at 1), so scores are set-relative and
// only comparable within one response. A lot with no walking distance is
// treated as the worst-case walk. Scores are rounded to 3 decimals; ties
// keep their input order (stable sort).
func (e *Engine) Rank(recs []Recommendation) []Recommendation {
	if len(recs) == 0 {
		return []Recommendation{}
	}

	maxCost := 1.0
	maxWalk := 1.0
	for _, r := range recs {
		if c := float64(r.CostCents); c > maxCost {
			maxCost = c
		}
		if r.WalkingDistanceMeters != nil && *r.WalkingDistanceMeters > maxWalk {
			maxWalk = *r.WalkingDistanceMeters
		}
	}

	w := e.weights
	scored := make([]Recommendation, len(recs))
	copy(scored, recs)

	for i := range scored {
		r := &scored[i]

		costNorm := float64(r.CostCents) / maxCost
		walk := maxWalk
		if r.WalkingDistanceMeters != nil {
			walk = *r.WalkingDistanceMeters
		}
		walkNorm := walk / maxWalk
		tram := 0.0
		if r.HasTram {
			tram = 1.0
		}
		tierNorm := float64(r.Tier) / 3.0

		score := w.Cost*(1-costNorm) +
			w.Walk*(1-walkNorm) +
			w.Tram*tram +
			w.Tier*(1-tierNorm) +
			w.Baseline

		r.Score = math.Round(score*1000) / 1000
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
