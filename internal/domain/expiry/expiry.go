// Package expiry classifies upcoming probation and contract deadlines
// into urgency buckets and flags records inside the follow-up window.
package expiry

import "time"

// Bucket is the urgency class of a deadline.
type Bucket string

const (
	BucketOverdue Bucket = "overdue"
	BucketUrgent  Bucket = "urgent"
	BucketWarning Bucket = "warning"
	BucketNormal  Bucket = "normal"
	BucketNone    Bucket = "none"
)

// Thresholds splits the day counts between urgent and warning. A
// deadline within Urgent days is urgent, within Warning days a
// warning, beyond that normal.
type Thresholds struct {
	Urgent  int
	Warning int
}

var (
	// ProbationThresholds drive the probation follow-up table.
	ProbationThresholds = Thresholds{Urgent: 7, Warning: 30}
	// ContractThresholds drive the contract follow-up table.
	ContractThresholds = Thresholds{Urgent: 30, Warning: 90}
)

// FollowUpDays is the inclusive look-ahead window used by the
// dashboard's expiring-soon counters.
const FollowUpDays = 30

// DaysUntil counts calendar days from today to the deadline. Both
// sides are truncated to midnight first, so a deadline later today is
// zero days away and yesterday's is minus one. The count rounds up,
// never down.
func DaysUntil(end, today time.Time) int {
	endDay := truncate(end)
	day := truncate(today)
	diff := endDay.Sub(day)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// Classify places a deadline into its urgency bucket. A nil deadline
// has no bucket.
func Classify(end *time.Time, today time.Time, t Thresholds) (Bucket, int) {
	if end == nil {
		return BucketNone, 0
	}
	days := DaysUntil(*end, today)
	switch {
	case days < 0:
		return BucketOverdue, days
	case days <= t.Urgent:
		return BucketUrgent, days
	case days <= t.Warning:
		return BucketWarning, days
	default:
		return BucketNormal, days
	}
}

// ExpiringSoon reports whether a deadline falls inside the inclusive
// follow-up window starting today. Past deadlines are outside it.
func ExpiringSoon(end *time.Time, today time.Time) bool {
	if end == nil {
		return false
	}
	endDay := truncate(*end)
	day := truncate(today)
	limit := day.AddDate(0, 0, FollowUpDays)
	return !endDay.Before(day) && !endDay.After(limit)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
