// Package engine computes parking cost and ranking recommendations.
//
// Everything here is a pure function of its inputs: the query instant is
// always passed in explicitly, no function reads the wall clock, and no
// shared state is mutated. One Engine value is safe for concurrent use
// across any number of requests.
package engine

import (
	"fmt"
	"math"
	"time"

	"balboa-parking-backend/internal/model"
)

// DefaultTimeZone is the civil time zone all date and clock comparisons use.
// The catalog's date strings are written in this zone.
const DefaultTimeZone = "America/Los_Angeles"

// Engine holds the fixed time zone and scoring weights for the pipeline.
type Engine struct {
	loc     *time.Location
	weights RankWeights
}

// New creates an engine. A nil location falls back to the park's time zone;
// zero-valued weights fall back to DefaultRankWeights.
func New(loc *time.Location, weights RankWeights) *Engine {
	if loc == nil {
		var err error
		loc, err = time.LoadLocation(DefaultTimeZone)
		if err != nil {
			// Missing tzdata is a deployment bug, not a request error.
			panic(fmt.Sprintf("engine: load %s: %v", DefaultTimeZone, err))
		}
	}
	if weights == (RankWeights{}) {
		weights = DefaultRankWeights
	}
	return &Engine{loc: loc, weights: weights}
}

// Catalog bundles the already-loaded, validated pricing tables the engine
// reads. The engine never mutates a catalog.
type Catalog struct {
	Lots               []model.ParkingLot
	TierAssignments    []model.LotTierAssignment
	PricingRules       []model.PricingRule
	EnforcementPeriods []model.EnforcementPeriod
	Holidays           []model.Holiday

	// Distances are optional walking routes for the requested destination.
	// DestinationID scopes which rows apply; empty matches any.
	Distances     []model.LotDestinationDistance
	DestinationID string

	// TramFrequencyMinutes is the tram headway, when schedule data exists.
	TramFrequencyMinutes *int
}

// Request is a single recommendation query.
type Request struct {
	UserType        model.UserType
	HasPass         bool
	DestinationSlug string
	QueryTime       time.Time
	VisitHours      float64
}

// Recommendation is one ranked parking option.
type Recommendation struct {
	LotSlug               string        `json:"lotSlug"`
	LotName               string        `json:"lotName"`
	LotDisplayName        string        `json:"lotDisplayName"`
	Lat                   float64       `json:"lat"`
	Lng                   float64       `json:"lng"`
	Tier                  model.LotTier `json:"tier"`
	CostCents             int           `json:"costCents"`
	CostDisplay           string        `json:"costDisplay"`
	IsFree                bool          `json:"isFree"`
	WalkingDistanceMeters *float64      `json:"walkingDistanceMeters"`
	WalkingTimeSeconds    *float64      `json:"walkingTimeSeconds"`
	WalkingTimeDisplay    *string       `json:"walkingTimeDisplay"`
	HasTram               bool          `json:"hasTram"`
	TramTimeMinutes       *int          `json:"tramTimeMinutes"`
	Score                 float64       `json:"score"`
	Tips                  []string      `json:"tips"`
}

// Result is the full pipeline output for one request.
type Result struct {
	Recommendations   []Recommendation `json:"recommendations"`
	EnforcementActive bool             `json:"enforcementActive"`
	QueryTime         string           `json:"queryTime"`
}

// Recommend runs the full pipeline: enforcement is evaluated once for the
// request, then each lot gets tier resolution, the cost waterfall, distance
// and tram enrichment, and finally the whole set is ranked.
//
// A negative or non-finite visit duration is a caller bug and panics; every
// data-quality problem instead fails open to a free/unknown result with an
// explanatory tip.
func (e *Engine) Recommend(req Request, cat Catalog) Result {
	if req.VisitHours < 0 || math.IsNaN(req.VisitHours) || math.IsInf(req.VisitHours, 0) {
		panic(fmt.Sprintf("engine: invalid visit duration %v", req.VisitHours))
	}

	enforced := e.IsEnforcementActive(req.QueryTime, cat.EnforcementPeriods, cat.Holidays)

	recs := make([]Recommendation, 0, len(cat.Lots))
	for _, lot := range cat.Lots {
		tier := e.ResolveTier(lot.ID, cat.TierAssignments, req.QueryTime)
		cost := e.ComputeLotCost(lot, tier, req.UserType, req.HasPass, req.VisitHours,
			cat.PricingRules, enforced, req.QueryTime)

		rec := Recommendation{
			LotSlug:        lot.Slug,
			LotName:        lot.Name,
			LotDisplayName: lot.DisplayName,
			Lat:            lot.Lat,
			Lng:            lot.Lng,
			Tier:           tier,
			CostCents:      cost.CostCents,
			CostDisplay:    cost.CostDisplay,
			IsFree:         cost.IsFree,
			HasTram:        lot.HasTramStop,
			Tips:           cost.Tips,
		}

		if req.DestinationSlug != "" {
			attachDistance(&rec, lot.ID, cat.DestinationID, cat.Distances)
		}

		if lot.HasTramStop {
			// Estimated wait is half the headway plus a 5 minute ride,
			// 5 minutes flat when no schedule data is available.
			wait := 5
			if cat.TramFrequencyMinutes != nil {
				wait = *cat.TramFrequencyMinutes/2 + 5
			}
			rec.TramTimeMinutes = &wait
		}

		if lot.HasEvCharging {
			rec.Tips = append(rec.Tips, "EV charging available")
		}
		if lot.HasAdaSpaces {
			rec.Tips = append(rec.Tips, "ADA accessible spaces available")
		}
		if lot.HasTramStop {
			rec.Tips = append(rec.Tips, "Free tram stop at this lot")
		}

		recs = append(recs, rec)
	}

	return Result{
		Recommendations:   e.Rank(recs),
		EnforcementActive: enforced,
		QueryTime:         req.QueryTime.UTC().Format(time.RFC3339),
	}
}
