package engine

import (
	"fmt"
	"math"
	"time"

	"balboa-parking-backend/internal/model"
)

// CostResult is the computed price for one lot, with human-readable tips
// explaining how it was reached.
type CostResult struct {
	CostCents   int      `json:"costCents"`
	CostDisplay string   `json:"costDisplay"`
	IsFree      bool     `json:"isFree"`
	Tips        []string `json:"tips"`
}

// FormatCost renders integer cents for display: "FREE" for zero or less,
// "$5" for whole dollars, "$5.50" otherwise.
func FormatCost(cents int) string {
	if cents <= 0 {
		return "FREE"
	}
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func freeResult(tips []string, tip string) CostResult {
	return CostResult{CostCents: 0, CostDisplay: "FREE", IsFree: true, Tips: append(tips, tip)}
}

// ComputeLotCost runs the cost waterfall for one lot. Branch order is load
// bearing: branches overlap in applicability and the first true branch
// determines both the price and the tip, so reordering changes results.
//
//  1. Free-tier lots are always free.
//  2. Outside enforcement hours everything is free.
//  3. Pass holders park free.
//  4. Staff and volunteers park free at every tier except Premium.
//  5. A lot special rule's grace period covers the whole visit.
//  6. The (tier, user type) pricing rule.
//  7. Fallback to the nonresident rule for that tier.
//  8. No rule anywhere: free, with a "pricing unavailable" tip.
//
// ADA visitors have no dedicated branch; their pricing is ordinary dated
// rules under the "ada" user type.
func (e *Engine) ComputeLotCost(lot model.ParkingLot, tier model.LotTier, user model.UserType,
	hasPass bool, visitHours float64, rules []model.PricingRule, enforced bool, at time.Time) CostResult {

	var tips []string

	if tier == model.TierFree {
		return freeResult(tips, "This lot is always free")
	}

	if !enforced {
		return freeResult(tips, "Parking is free outside enforcement hours")
	}

	if hasPass {
		return freeResult(tips, "Your parking pass covers this lot")
	}

	if (user == model.UserStaff || user == model.UserVolunteer) && tier != model.TierPremium {
		return freeResult(tips, "Staff and volunteers park free in Free, Standard, and Economy lots")
	}

	date := e.dateString(at)
	for _, sr := range lot.SpecialRules {
		if sr.FreeMinutes <= 0 || !inSpan(sr.EffectiveDate, sr.EndDate, date) {
			continue
		}
		if visitHours <= float64(sr.FreeMinutes)/60 {
			return freeResult(tips, sr.Description)
		}
	}

	if rule, ok := e.ResolveRule(tier, user, rules, at); ok {
		return costFromRule(rule, visitHours, tips)
	}

	if rule, ok := e.ResolveRule(tier, model.UserNonresident, rules, at); ok {
		return costFromRule(rule, visitHours, tips)
	}

	return freeResult(tips, "Pricing information unavailable")
}

// costFromRule applies a resolved rule to the visit duration.
func costFromRule(rule model.PricingRule, visitHours float64, tips []string) CostResult {
	var cents int

	switch rule.DurationType {
	case model.DurationHourly:
		cents = rule.RateCents * int(math.Ceil(visitHours))
		if rule.MaxDailyCents != nil && cents > *rule.MaxDailyCents {
			cents = *rule.MaxDailyCents
			tips = append(tips, fmt.Sprintf("Daily max of %s applied", FormatCost(cents)))
		}
		tips = append(tips, FormatCost(rule.RateCents)+"/hr")
	case model.DurationDaily:
		cents = rule.RateCents
		tips = append(tips, "Flat daily rate")
	case model.DurationEvent:
		cents = rule.RateCents
		tips = append(tips, "Event rate applies")
	}

	return CostResult{
		CostCents:   cents,
		CostDisplay: FormatCost(cents),
		IsFree:      cents == 0,
		Tips:        tips,
	}
}
