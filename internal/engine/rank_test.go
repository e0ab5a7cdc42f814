package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"balboa-parking-backend/internal/model"
)

func TestRankEmptyInput(t *testing.T) {
	eng, _ := newTestEngine(t)
	assert.Equal(t, []Recommendation{}, eng.Rank(nil))
	assert.Equal(t, []Recommendation{}, eng.Rank([]Recommendation{}))
}

func TestRankFreeBeatsPaid(t *testing.T) {
	eng, _ := newTestEngine(t)
	meters := 100.0
	recs := []Recommendation{
		{LotSlug: "paid", CostCents: 1000, Tier: model.TierPremium, WalkingDistanceMeters: &meters},
		{LotSlug: "free", CostCents: 0, Tier: model.TierFree, WalkingDistanceMeters: &meters},
	}

	ranked := eng.Rank(recs)
	require.Len(t, ranked, 2)
	assert.Equal(t, "free", ranked[0].LotSlug)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRankMissingDistanceIsWorstCase(t *testing.T) {
	eng, _ := newTestEngine(t)
	near := 100.0
	far := 1000.0
	recs := []Recommendation{
		{LotSlug: "near", WalkingDistanceMeters: &near},
		{LotSlug: "unknown"},
		{LotSlug: "far", WalkingDistanceMeters: &far},
	}

	ranked := eng.Rank(recs)
	bySlug := map[string]Recommendation{}
	for _, r := range ranked {
		bySlug[r.LotSlug] = r
	}

	// A lot with no distance row scores the same as the farthest lot.
	assert.Equal(t, bySlug["far"].Score, bySlug["unknown"].Score)
	assert.Greater(t, bySlug["near"].Score, bySlug["unknown"].Score)
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	eng, _ := newTestEngine(t)
	recs := []Recommendation{
		{LotSlug: "first"},
		{LotSlug: "second"},
		{LotSlug: "third"},
	}

	ranked := eng.Rank(recs)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].LotSlug)
	assert.Equal(t, "second", ranked[1].LotSlug)
	assert.Equal(t, "third", ranked[2].LotSlug)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
}

func TestRankCheaperNeverScoresLower(t *testing.T) {
	eng, _ := newTestEngine(t)
	recs := []Recommendation{
		{LotSlug: "a", CostCents: 400},
		{LotSlug: "b", CostCents: 800},
		{LotSlug: "c", CostCents: 1200},
	}

	ranked := eng.Rank(recs)
	assert.Equal(t, "a", ranked[0].LotSlug)
	assert.Equal(t, "b", ranked[1].LotSlug)
	assert.Equal(t, "c", ranked[2].LotSlug)
}

func TestRankTramBonus(t *testing.T) {
	eng, _ := newTestEngine(t)
	recs := []Recommendation{
		{LotSlug: "no-tram"},
		{LotSlug: "tram", HasTram: true},
	}

	ranked := eng.Rank(recs)
	assert.Equal(t, "tram", ranked[0].LotSlug)
}

func TestRankScoresRoundedToThreeDecimals(t *testing.T) {
	eng, _ := newTestEngine(t)
	recs := []Recommendation{
		{LotSlug: "a", CostCents: 333, Tier: model.TierStandard},
		{LotSlug: "b", CostCents: 999, Tier: model.TierPremium},
	}

	for _, r := range eng.Rank(recs) {
		rounded := float64(int(r.Score*1000+0.5)) / 1000
		assert.InDelta(t, rounded, r.Score, 1e-9)
	}
}

func TestRankCustomWeights(t *testing.T) {
	_, loc := newTestEngine(t)
	// All weight on cost: the cheapest lot must win regardless of walk.
	eng := New(loc, RankWeights{Cost: 1})
	near := 10.0
	far := 2000.0
	recs := []Recommendation{
		{LotSlug: "cheap-far", CostCents: 100, WalkingDistanceMeters: &far},
		{LotSlug: "pricey-near", CostCents: 2000, WalkingDistanceMeters: &near},
	}

	ranked := eng.Rank(recs)
	assert.Equal(t, "cheap-far", ranked[0].LotSlug)
}
