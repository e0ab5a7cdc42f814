package model

import "time"

// Destination is a point of interest inside the park that visitors walk to
// from a lot.
type Destination struct {
	ID          string  `gorm:"primaryKey;size:64"`
	Slug        string  `gorm:"uniqueIndex;size:128;not null"`
	Name        string  `gorm:"size:256;not null"`
	DisplayName string  `gorm:"size:256;not null"`
	Area        string  `gorm:"size:64"`
	Type        string  `gorm:"size:32"`
	Address     *string `gorm:"size:256"`
	Lat         float64 `gorm:"not null"`
	Lng         float64 `gorm:"not null"`
	CreatedAt   time.Time
}

// LotDestinationDistance is a precomputed walking route between a lot and a
// destination. Produced by the offline ingestion pipeline; read-only here.
type LotDestinationDistance struct {
	ID                    int64   `gorm:"primaryKey;autoIncrement"`
	LotID                 string  `gorm:"index:idx_dist_lot_dest;size:64;not null"`
	DestinationID         string  `gorm:"index:idx_dist_lot_dest;size:64;not null"`
	WalkingDistanceMeters float64 `gorm:"not null"`
	WalkingTimeSeconds    float64 `gorm:"not null"`
}
