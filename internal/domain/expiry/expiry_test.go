package expiry

import (
	"testing"
	"time"
)

var today = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

func days(n int) *time.Time {
	d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return &d
}

func TestDaysUntil(t *testing.T) {
	cases := []struct {
		end  time.Time
		want int
	}{
		{*days(0), 0},
		{*days(1), 1},
		{*days(-1), -1},
		{*days(-5), -5},
		{*days(30), 30},
	}
	for _, tc := range cases {
		if got := DaysUntil(tc.end, today); got != tc.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", tc.end.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	// 23:59 later today is still day zero.
	end := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	if got := DaysUntil(end, today); got != 0 {
		t.Errorf("same-day deadline: got %d, want 0", got)
	}
}

func TestClassifyProbation(t *testing.T) {
	cases := []struct {
		name string
		end  *time.Time
		want Bucket
		days int
	}{
		{"overdue", days(-5), BucketOverdue, -5},
		{"due today", days(0), BucketUrgent, 0},
		{"inside urgent", days(7), BucketUrgent, 7},
		{"inside warning", days(8), BucketWarning, 8},
		{"edge of warning", days(30), BucketWarning, 30},
		{"beyond warning", days(31), BucketNormal, 31},
		{"no deadline", nil, BucketNone, 0},
	}
	for _, tc := range cases {
		bucket, days := Classify(tc.end, today, ProbationThresholds)
		if bucket != tc.want || days != tc.days {
			t.Errorf("%s: got (%s, %d), want (%s, %d)", tc.name, bucket, days, tc.want, tc.days)
		}
	}
}

func TestClassifyContract(t *testing.T) {
	if b, _ := Classify(days(30), today, ContractThresholds); b != BucketUrgent {
		t.Errorf("30 days out: got %s, want %s", b, BucketUrgent)
	}
	if b, _ := Classify(days(90), today, ContractThresholds); b != BucketWarning {
		t.Errorf("90 days out: got %s, want %s", b, BucketWarning)
	}
	if b, _ := Classify(days(91), today, ContractThresholds); b != BucketNormal {
		t.Errorf("91 days out: got %s, want %s", b, BucketNormal)
	}
}

func TestExpiringSoon(t *testing.T) {
	if ExpiringSoon(days(-1), today) {
		t.Error("yesterday is not expiring soon")
	}
	if !ExpiringSoon(days(0), today) {
		t.Error("today is inside the window")
	}
	if !ExpiringSoon(days(30), today) {
		t.Error("day 30 is inside the inclusive window")
	}
	if ExpiringSoon(days(31), today) {
		t.Error("day 31 is outside the window")
	}
	if ExpiringSoon(nil, today) {
		t.Error("nil deadline never expires")
	}
}
