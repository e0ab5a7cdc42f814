package engine

import (
	"time"

	"balboa-parking-backend/internal/model"
)

// ResolveRule finds the applicable pricing rule for a tier and user type on
// a date, picking the most recently effective match. A missing rule is an
// expected outcome, not an error; the cost waterfall has its own fallback.
func (e *Engine) ResolveRule(tier model.LotTier, user model.UserType, rules []model.PricingRule, at time.Time) (model.PricingRule, bool) {
	date := e.dateString(at)

	var scoped []model.PricingRule
	for _, r := range rules {
		if r.Tier == tier && r.UserType == user {
			scoped = append(scoped, r)
		}
	}

	return latestEffective(scoped, date, func(r model.PricingRule) (string, *string) {
		return r.EffectiveDate, r.EndDate
	})
}
