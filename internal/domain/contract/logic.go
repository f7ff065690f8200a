package contract

import (
	"fmt"
	"time"
)

// DeriveType classifies a contract from the presence of an end date.
// Any explicit type in the input is ignored.
func DeriveType(endDate *time.Time) string {
	if endDate != nil {
		return TypeFixed
	}
	return TypeIndefinite
}

// DeriveStatus returns expired when the end date lies strictly before
// today, active otherwise. Indefinite contracts are always active at
// creation time.
func DeriveStatus(endDate *time.Time, today time.Time) string {
	if endDate == nil {
		return StatusActive
	}
	day := truncate(today)
	if truncate(*endDate).Before(day) {
		return StatusExpired
	}
	return StatusActive
}

// EndDateFor derives a fixed contract's end date from its start and
// length in months. Calendar-month arithmetic, no month-end clamping.
func EndDateFor(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}

// NextNumber builds the contract number for an employee's next
// agreement. The first contract carries sequence 1.
func NextNumber(employeeNumber string, existing int) string {
	return fmt.Sprintf("%s-%d", employeeNumber, existing+1)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
