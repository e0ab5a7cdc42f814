package engine

// Tier assignments, pricing rules, enforcement periods, and special rules all
// share one selection pattern: rows carry an inclusive effective date and an
// optional inclusive end date, and the most recently effective row wins. The
// pattern lives here once instead of being re-derived per table.

// inSpan reports whether a date falls inside [from, to], where a nil end
// date means the row is open-ended.
func inSpan(from string, to *string, date string) bool {
	return from <= date && (to == nil || *to >= date)
}

// latestEffective returns the row whose effective date is the greatest one
// not after date, bounded by the optional end date. span extracts the row's
// (effectiveDate, endDate) pair.
func latestEffective[T any](rows []T, date string, span func(T) (string, *string)) (T, bool) {
	var best T
	var bestFrom string
	found := false
	for _, row := range rows {
		from, to := span(row)
		if !inSpan(from, to, date) {
			continue
		}
		if !found || from > bestFrom {
			best = row
			bestFrom = from
			found = true
		}
	}
	return best, found
}
