package engine

import (
	"strconv"
	"strings"
	"time"

	"balboa-parking-backend/internal/model"
)

// All date comparisons in the engine are lexicographic comparisons on
// zero-padded YYYY-MM-DD strings in the park's time zone. That is only valid
// because the format is fixed-width, which is why the catalog stores dates
// as strings instead of timestamps.

// dateString renders an instant as a civil date in the engine's time zone.
func (e *Engine) dateString(t time.Time) string {
	return t.In(e.loc).Format("2006-01-02")
}

// dayOfWeek returns the local weekday with Sunday = 0.
func (e *Engine) dayOfWeek(t time.Time) int {
	return int(t.In(e.loc).Weekday())
}

// minuteOfDay returns minutes since local midnight.
func (e *Engine) minuteOfDay(t time.Time) int {
	lt := t.In(e.loc)
	return lt.Hour()*60 + lt.Minute()
}

// parseClock converts an "HH:MM" string to minutes since midnight. Malformed
// input returns ok=false so a bad enforcement row disables itself instead of
// failing the request.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return 0, false
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// isHoliday reports whether the instant's calendar date matches any holiday.
// Recurring holidays match on month/day every year; others on the exact date.
func (e *Engine) isHoliday(t time.Time, holidays []model.Holiday) bool {
	date := e.dateString(t)
	for _, h := range holidays {
		if len(h.Date) != len(date) {
			continue
		}
		if h.IsRecurring {
			if h.Date[5:] == date[5:] {
				return true
			}
			continue
		}
		if h.Date == date {
			return true
		}
	}
	return false
}

// UpcomingHoliday is the next enforcement-free day, for the status endpoint.
type UpcomingHoliday struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// NextHoliday returns the first holiday on or after the instant's date.
// Recurring holidays are projected onto the current year, or the next year
// when this year's occurrence has already passed.
func (e *Engine) NextHoliday(t time.Time, holidays []model.Holiday) (UpcomingHoliday, bool) {
	today := e.dateString(t)
	var next UpcomingHoliday
	found := false
	for _, h := range holidays {
		if len(h.Date) != len(today) {
			continue
		}
		date := h.Date
		if h.IsRecurring {
			date = today[:4] + h.Date[4:]
			if date < today {
				year, err := strconv.Atoi(today[:4])
				if err != nil {
					continue
				}
				date = strconv.Itoa(year+1) + h.Date[4:]
			}
		}
		if date < today {
			continue
		}
		if !found || date < next.Date {
			next = UpcomingHoliday{Name: h.Name, Date: date}
			found = true
		}
	}
	return next, found
}
