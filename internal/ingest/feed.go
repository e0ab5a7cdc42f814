package ingest

import "balboa-parking-backend/internal/model"

// Feed models the upstream catalog document.
type Feed struct {
	Lots []FeedLot `json:"lots"`
}

// FeedLot is one lot record in the feed, carrying its full tier timeline.
type FeedLot struct {
	ID            string              `json:"id"`
	Slug          string              `json:"slug"`
	Name          string              `json:"name"`
	DisplayName   string              `json:"displayName"`
	Address       string              `json:"address"`
	Lat           float64             `json:"lat"`
	Lng           float64             `json:"lng"`
	Capacity      *int                `json:"capacity"`
	HasEvCharging bool                `json:"hasEvCharging"`
	HasAdaSpaces  bool                `json:"hasAdaSpaces"`
	HasTramStop   bool                `json:"hasTramStop"`
	SpecialRules  []model.SpecialRule `json:"specialRules"`
	Notes         *string             `json:"notes"`
	TierHistory   []FeedAssignment    `json:"tierHistory"`
}

// FeedAssignment is one dated tier entry for a lot.
type FeedAssignment struct {
	Tier          int     `json:"tier"`
	EffectiveDate string  `json:"effectiveDate"`
	EndDate       *string `json:"endDate"`
}
