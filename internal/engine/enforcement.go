package engine

import (
	"time"

	"balboa-parking-backend/internal/model"
)

// EnforcementStatus describes whether paid enforcement applies at an
// instant, and when it does, which daily window matched. The window fields
// exist for the status endpoint; pricing decisions use only Active.
type EnforcementStatus struct {
	Active    bool   `json:"active"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// IsEnforcementActive reports whether paid enforcement is in effect at the
// given instant.
func (e *Engine) IsEnforcementActive(at time.Time, periods []model.EnforcementPeriod, holidays []model.Holiday) bool {
	return e.EnforcementStatus(at, periods, holidays).Active
}

// EnforcementStatus evaluates the enforcement tables for an instant.
// Holidays are an unconditional override: enforcement is off for the whole
// day regardless of period windows. Otherwise a period applies when its date
// span covers the instant's date, its weekday set contains the instant's
// weekday, and the minute of day falls in [start, end). Overlapping periods
// are a data error but cannot double-report; the first match wins.
func (e *Engine) EnforcementStatus(at time.Time, periods []model.EnforcementPeriod, holidays []model.Holiday) EnforcementStatus {
	if e.isHoliday(at, holidays) {
		return EnforcementStatus{}
	}

	date := e.dateString(at)
	weekday := e.dayOfWeek(at)
	minute := e.minuteOfDay(at)

	for _, ep := range periods {
		if !inSpan(ep.EffectiveDate, ep.EndDate, date) {
			continue
		}
		if !containsWeekday(ep.DaysOfWeek, weekday) {
			continue
		}
		start, okStart := parseClock(ep.StartTime)
		end, okEnd := parseClock(ep.EndTime)
		if !okStart || !okEnd {
			// Fail closed: a malformed row is treated as never active.
			continue
		}
		if minute >= start && minute < end {
			return EnforcementStatus{Active: true, StartTime: ep.StartTime, EndTime: ep.EndTime}
		}
	}
	return EnforcementStatus{}
}

func containsWeekday(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
