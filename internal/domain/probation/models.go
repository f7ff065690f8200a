package probation

import "time"

const (
	StatusActive   = "active"
	StatusPassed   = "passed"
	StatusExtended = "extended"
	StatusFailed   = "failed"
)

// Statuses lists the accepted probation states.
var Statuses = []string{StatusActive, StatusPassed, StatusExtended, StatusFailed}

// Outcomes are the verdicts an evaluation may record. A period leaves
// the active state exactly once and never returns to it.
var Outcomes = []string{StatusPassed, StatusExtended, StatusFailed}

// ProbationPeriod tracks a trial window for one employee. Evaluation
// fields stay empty until a reviewer records an outcome.
type ProbationPeriod struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employeeId"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	DurationMonths int       `json:"durationMonths"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`

	TaskPerformance      string     `json:"taskPerformance,omitempty"`
	TaskCompletionRate   *int       `json:"taskCompletionRate,omitempty"`
	TaskNotes            string     `json:"taskNotes,omitempty"`
	DepartmentEvaluation string     `json:"departmentEvaluation,omitempty"`
	SupervisorEvaluation string     `json:"supervisorEvaluation,omitempty"`
	EvaluationNotes      string     `json:"evaluationNotes,omitempty"`
	EvaluatedBy          string     `json:"evaluatedBy,omitempty"`
	EvaluationDate       *time.Time `json:"evaluationDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Joined employee fields, populated on list reads.
	EmployeeName   string `json:"employeeName,omitempty"`
	EmployeeNumber string `json:"employeeNumber,omitempty"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
}

// Evaluation carries a reviewer's verdict on a probation period.
type Evaluation struct {
	Status               string     `json:"status"`
	TaskPerformance      string     `json:"taskPerformance"`
	TaskCompletionRate   *int       `json:"taskCompletionRate"`
	TaskNotes            string     `json:"taskNotes"`
	DepartmentEvaluation string     `json:"departmentEvaluation"`
	SupervisorEvaluation string     `json:"supervisorEvaluation"`
	EvaluationNotes      string     `json:"evaluationNotes"`
	EvaluatedBy          string     `json:"evaluatedBy"`
	EvaluationDate       *time.Time `json:"evaluationDate"`
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidOutcome reports whether status is a terminal evaluation verdict.
func ValidOutcome(status string) bool {
	for _, s := range Outcomes {
		if s == status {
			return true
		}
	}
	return false
}
