package model

import "time"

// LotTier is the pricing tier assigned to a parking lot. Tier 0 is
// permanently free; higher numbers are cheaper paid tiers.
type LotTier int

const (
	TierFree LotTier = iota
	TierPremium
	TierStandard
	TierEconomy
)

// TierNames and TierDescriptions are read-only display tables.
var TierNames = map[LotTier]string{
	TierFree:     "Free",
	TierPremium:  "Premium",
	TierStandard: "Standard",
	TierEconomy:  "Economy",
}

var TierDescriptions = map[LotTier]string{
	TierFree:     "Free parking for everyone",
	TierPremium:  "Paid parking - closest to main attractions",
	TierStandard: "Lower cost parking",
	TierEconomy:  "Budget-friendly parking",
}

// Name returns the display name for a tier.
func (t LotTier) Name() string {
	return TierNames[t]
}

// Valid reports whether the tier is one of the defined tiers 0-3.
func (t LotTier) Valid() bool {
	return t >= TierFree && t <= TierEconomy
}

// SpecialRule is a lot-specific grace period (e.g. first N minutes free),
// independent of the general pricing-rule table. Stored as a JSON column on
// the lot.
type SpecialRule struct {
	Description   string  `json:"description"`
	FreeMinutes   int     `json:"freeMinutes"`
	EffectiveDate string  `json:"effectiveDate"`
	EndDate       *string `json:"endDate"`
}

// ParkingLot represents a parking facility in the park.
type ParkingLot struct {
	ID            string  `gorm:"primaryKey;size:64"`
	Slug          string  `gorm:"uniqueIndex;size:128;not null"`
	Name          string  `gorm:"size:256;not null"`
	DisplayName   string  `gorm:"size:256;not null"`
	Address       string  `gorm:"size:256"`
	Lat           float64 `gorm:"not null"`
	Lng           float64 `gorm:"not null"`
	Capacity      *int
	HasEvCharging bool          `gorm:"not null"`
	HasAdaSpaces  bool          `gorm:"not null"`
	HasTramStop   bool          `gorm:"not null"`
	SpecialRules  []SpecialRule `gorm:"serializer:json"`
	Notes         *string
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// LotTierAssignment places a lot in a tier over a date range. Assignments for
// one lot form a non-overlapping timeline; the most recently effective one
// wins. All dates are zero-padded YYYY-MM-DD strings in the park's time zone.
type LotTierAssignment struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	LotID         string  `gorm:"index;size:64;not null"`
	Tier          LotTier `gorm:"not null"`
	EffectiveDate string  `gorm:"size:10;not null"`
	EndDate       *string `gorm:"size:10"`
}
