package engine

import (
	"fmt"
	"math"

	"balboa-parking-backend/internal/model"
)

// FormatWalkTime renders walking seconds as whole minutes, floored at one
// minute so very short walks never display as zero.
func FormatWalkTime(seconds float64) string {
	minutes := int(math.Round(seconds / 60))
	if minutes <= 0 {
		return "1 min walk"
	}
	return fmt.Sprintf("%d min walk", minutes)
}

// attachDistance fills in the walking fields when a distance row exists for
// the lot. Absence is not an error: the lot is still ranked, just without
// the distance-weighted advantage.
func attachDistance(rec *Recommendation, lotID, destinationID string, distances []model.LotDestinationDistance) {
	for _, d := range distances {
		if d.LotID != lotID {
			continue
		}
		if destinationID != "" && d.DestinationID != destinationID {
			continue
		}
		meters := d.WalkingDistanceMeters
		seconds := d.WalkingTimeSeconds
		display := FormatWalkTime(seconds)
		rec.WalkingDistanceMeters = &meters
		rec.WalkingTimeSeconds = &seconds
		rec.WalkingTimeDisplay = &display
		return
	}
}
