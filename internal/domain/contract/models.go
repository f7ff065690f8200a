package contract

import "time"

const (
	TypeFixed      = "fixed"
	TypeIndefinite = "indefinite"
)

const (
	StatusActive     = "active"
	StatusExpired    = "expired"
	StatusRenewed    = "renewed"
	StatusTerminated = "terminated"
)

var Statuses = []string{StatusActive, StatusExpired, StatusRenewed, StatusTerminated}

// Contract is one employment agreement. Fixed-term contracts carry an
// end date; indefinite ones leave it nil.
type Contract struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	ContractNumber string     `json:"contractNumber"`
	ContractType   string     `json:"contractType"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	DurationMonths *int       `json:"durationMonths,omitempty"`
	Salary         *float64   `json:"salary,omitempty"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	RenewalNotes   string     `json:"renewalNotes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// Joined employee fields, populated on list reads.
	EmployeeName   string `json:"employeeName,omitempty"`
	EmployeeNumber string `json:"employeeNumber,omitempty"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
}

// Renewal describes the replacement contract created when an existing
// one is renewed.
type Renewal struct {
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	DurationMonths *int       `json:"durationMonths"`
	Salary         *float64   `json:"salary"`
	RenewalNotes   string     `json:"renewalNotes"`
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}
