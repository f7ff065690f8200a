package probation

import "time"

// DefaultMonths is the probation length applied when a request omits
// the end date.
const DefaultMonths = 3

// EndDateFor derives the end of a probation window from its start and
// length. Calendar-month arithmetic, so 2024-11-30 plus three months
// lands on 2025-03-02 rather than a clamped month end.
func EndDateFor(start time.Time, months int) time.Time {
	if months <= 0 {
		months = DefaultMonths
	}
	return start.AddDate(0, months, 0)
}

// DefaultEndDate is EndDateFor with the default length.
func DefaultEndDate(start time.Time) time.Time {
	return EndDateFor(start, DefaultMonths)
}

// ValidateWindow rejects windows that end on or before their start.
func ValidateWindow(start, end time.Time) bool {
	return end.After(start)
}
