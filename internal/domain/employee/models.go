package employee

import "time"

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

var Statuses = []string{StatusActive, StatusInactive, StatusTerminated}

type Employee struct {
	ID             string    `json:"id"`
	EmployeeNumber string    `json:"employeeNumber"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Location       string    `json:"location,omitempty"`
	Department     string    `json:"department,omitempty"`
	Position       string    `json:"position,omitempty"`
	DirectManager  string    `json:"directManager,omitempty"`
	NationalID     string    `json:"nationalId,omitempty"`
	HireDate       time.Time `json:"hireDate"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Update carries a partial employee edit: only non-nil fields are applied,
// unspecified fields keep their stored values.
type Update struct {
	Name          *string    `json:"name"`
	Email         *string    `json:"email"`
	Phone         *string    `json:"phone"`
	Location      *string    `json:"location"`
	Department    *string    `json:"department"`
	Position      *string    `json:"position"`
	DirectManager *string    `json:"directManager"`
	NationalID    *string    `json:"nationalId"`
	HireDate      *time.Time `json:"hireDate"`
	Status        *string    `json:"status"`
}

// Apply overlays the update onto an existing record.
func (u Update) Apply(emp *Employee) {
	if u.Name != nil {
		emp.Name = *u.Name
	}
	if u.Email != nil {
		emp.Email = *u.Email
	}
	if u.Phone != nil {
		emp.Phone = *u.Phone
	}
	if u.Location != nil {
		emp.Location = *u.Location
	}
	if u.Department != nil {
		emp.Department = *u.Department
	}
	if u.Position != nil {
		emp.Position = *u.Position
	}
	if u.DirectManager != nil {
		emp.DirectManager = *u.DirectManager
	}
	if u.NationalID != nil {
		emp.NationalID = *u.NationalID
	}
	if u.HireDate != nil {
		emp.HireDate = *u.HireDate
	}
	if u.Status != nil {
		emp.Status = *u.Status
	}
}
