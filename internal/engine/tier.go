package engine

import (
	"time"

	"balboa-parking-backend/internal/model"
)

// ResolveTier returns the lot's pricing tier on the given date. A lot with
// no applicable assignment defaults to the free tier: unknown lots must
// never be presented as paid.
func (e *Engine) ResolveTier(lotID string, assignments []model.LotTierAssignment, at time.Time) model.LotTier {
	date := e.dateString(at)

	var scoped []model.LotTierAssignment
	for _, ta := range assignments {
		if ta.LotID == lotID {
			scoped = append(scoped, ta)
		}
	}

	ta, ok := latestEffective(scoped, date, func(ta model.LotTierAssignment) (string, *string) {
		return ta.EffectiveDate, ta.EndDate
	})
	if !ok {
		return model.TierFree
	}
	return ta.Tier
}
