// Package importer reconciles spreadsheet batches of employees and
// contracts against the database without overwriting existing records.
package importer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/contract"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/employee"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
)

// Row is one spreadsheet line after header mapping. Dates stay as
// strings here so a malformed cell fails its own row only. SourceRow
// is the 1-based spreadsheet row the cells came from; blank lines in
// the file shift it away from the slice index.
type Row struct {
	SourceRow            int
	EmployeeCode         string
	Name                 string
	Location             string
	Department           string
	JobTitle             string
	DirectManager        string
	SocialSecurityNumber string
	HireDate             string
	ContractDuration     string
	ContractStartDate    string
	ContractEndDate      string
	ContractSequence     string
	GapStartDate         string
	GapEndDate           string
}

// Store is the persistence surface the reconciler needs.
type Store interface {
	EmployeeIDByNumber(ctx context.Context, employeeNumber string) (string, error)
	CreateEmployee(ctx context.Context, emp employee.Employee) (string, error)
	CreateContract(ctx context.Context, c contract.Contract) (string, error)
}

// Summary reports what one batch produced.
type Summary struct {
	EmployeesCreated int      `json:"employeesCreated"`
	ContractsCreated int      `json:"contractsCreated"`
	Errors           []string `json:"errors"`
}

type Reconciler struct {
	Store Store
	Now   func() time.Time
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{Store: store, Now: time.Now}
}

// Run walks the batch in order. Each row stands alone: a bad row adds
// one error string and the batch keeps going. Employees already in the
// database (or created earlier in the same batch) are reused, never
// overwritten.
func (r *Reconciler) Run(ctx context.Context, rows []Row) Summary {
	summary := Summary{Errors: []string{}}
	seen := map[string]string{} // code -> employee id within this batch
	today := r.Now()

	for i, row := range rows {
		line := row.SourceRow
		if line == 0 {
			line = i + 2 // header occupies row 1
		}
		if err := r.processRow(ctx, row, line, seen, today, &summary); err != nil {
			summary.Errors = append(summary.Errors, err.Error())
		}
	}
	return summary
}

func (r *Reconciler) processRow(ctx context.Context, row Row, line int, seen map[string]string, today time.Time, summary *Summary) error {
	if row.EmployeeCode == "" || row.Name == "" || row.HireDate == "" {
		return fmt.Errorf("row %d: employee code, name and hire date are required", line)
	}
	hireDate, err := parseCellDate(row.HireDate)
	if err != nil {
		return fmt.Errorf("row %d: invalid hire date %q", line, row.HireDate)
	}

	employeeID, ok := seen[row.EmployeeCode]
	if !ok {
		employeeID, err = r.resolveEmployee(ctx, row, hireDate, summary)
		if err != nil {
			return fmt.Errorf("row %d: %v", line, err)
		}
		seen[row.EmployeeCode] = employeeID
	}

	if row.ContractStartDate == "" {
		return nil
	}
	if err := r.createContract(ctx, row, employeeID, today, summary); err != nil {
		return fmt.Errorf("row %d: %v", line, err)
	}
	return nil
}

func (r *Reconciler) resolveEmployee(ctx context.Context, row Row, hireDate time.Time, summary *Summary) (string, error) {
	id, err := r.Store.EmployeeIDByNumber(ctx, row.EmployeeCode)
	if err != nil {
		return "", fmt.Errorf("lookup employee %s: %v", row.EmployeeCode, err)
	}
	if id != "" {
		return id, nil
	}
	id, err = r.Store.CreateEmployee(ctx, employee.Employee{
		EmployeeNumber: row.EmployeeCode,
		Name:           row.Name,
		Location:       row.Location,
		Department:     row.Department,
		Position:       row.JobTitle,
		DirectManager:  row.DirectManager,
		NationalID:     row.SocialSecurityNumber,
		HireDate:       hireDate,
		Status:         employee.StatusActive,
	})
	if err != nil {
		return "", fmt.Errorf("create employee %s: %v", row.EmployeeCode, err)
	}
	summary.EmployeesCreated++
	return id, nil
}

func (r *Reconciler) createContract(ctx context.Context, row Row, employeeID string, today time.Time, summary *Summary) error {
	startDate, err := parseCellDate(row.ContractStartDate)
	if err != nil {
		return fmt.Errorf("invalid contract start date %q", row.ContractStartDate)
	}
	var endDate *time.Time
	if row.ContractEndDate != "" {
		end, err := parseCellDate(row.ContractEndDate)
		if err != nil {
			return fmt.Errorf("invalid contract end date %q", row.ContractEndDate)
		}
		endDate = &end
	}

	sequence := row.ContractSequence
	if sequence == "" {
		sequence = "1"
	}
	c := contract.Contract{
		EmployeeID:     employeeID,
		ContractNumber: fmt.Sprintf("%s-%s", row.EmployeeCode, sequence),
		ContractType:   contract.DeriveType(endDate),
		StartDate:      startDate,
		EndDate:        endDate,
		DurationMonths: parseDurationMonths(row.ContractDuration),
		Status:         contract.DeriveStatus(endDate, today),
	}
	if _, err := r.Store.CreateContract(ctx, c); err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("contract %s already exists", c.ContractNumber)
		}
		return fmt.Errorf("create contract %s: %v", c.ContractNumber, err)
	}
	summary.ContractsCreated++
	return nil
}

// parseDurationMonths reads the leading integer of a duration cell, so
// "12" and "12 months" both yield twelve. Anything else is dropped
// rather than failing the row; the end date already fixes the term.
func parseDurationMonths(value string) *int {
	digits := 0
	for digits < len(value) && value[digits] >= '0' && value[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return nil
	}
	months, err := strconv.Atoi(value[:digits])
	if err != nil || months <= 0 {
		return nil
	}
	return &months
}

var cellDateLayouts = []string{"2006-01-02", "02/01/2006", "01-02-06", "2/1/2006"}

func parseCellDate(value string) (time.Time, error) {
	for _, layout := range cellDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
