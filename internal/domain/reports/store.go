package reports

import (
	"context"
	"time"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

// Stats summarises the records the dashboard cards show.
type Stats struct {
	TotalEmployees     int `json:"totalEmployees"`
	ActiveProbations   int `json:"activeProbations"`
	ExpiringProbations int `json:"expiringProbations"`
	ActiveContracts    int `json:"activeContracts"`
	ExpiringContracts  int `json:"expiringContracts"`
}

// UrgentProbation is one row of the urgent-probations panel.
type UrgentProbation struct {
	ID             string    `json:"id"`
	EmployeeName   string    `json:"employeeName"`
	EmployeeNumber string    `json:"employeeNumber"`
	Department     string    `json:"department"`
	EndDate        time.Time `json:"endDate"`
}

// UrgentContract is one row of the urgent-contracts panel.
type UrgentContract struct {
	ID             string    `json:"id"`
	ContractNumber string    `json:"contractNumber"`
	EmployeeName   string    `json:"employeeName"`
	EmployeeNumber string    `json:"employeeNumber"`
	Department     string    `json:"department"`
	EndDate        time.Time `json:"endDate"`
}

// Counts gathers the dashboard numbers. The expiring counters use the
// inclusive [from, to] window on active records only.
func (s *Store) Counts(ctx context.Context, from, to time.Time) (*Stats, error) {
	var stats Stats
	err := s.DB.QueryRow(ctx, `
    SELECT
      (SELECT COUNT(*) FROM employees WHERE status = 'active'),
      (SELECT COUNT(*) FROM probation_periods WHERE status = 'active'),
      (SELECT COUNT(*) FROM probation_periods
        WHERE status = 'active' AND end_date BETWEEN $1 AND $2),
      (SELECT COUNT(*) FROM contracts WHERE status = 'active'),
      (SELECT COUNT(*) FROM contracts
        WHERE status = 'active' AND end_date BETWEEN $1 AND $2)
  `, from, to).Scan(
		&stats.TotalEmployees,
		&stats.ActiveProbations,
		&stats.ExpiringProbations,
		&stats.ActiveContracts,
		&stats.ExpiringContracts,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Store) UrgentProbations(ctx context.Context, from, to time.Time) ([]UrgentProbation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, e.name, e.employee_number, COALESCE(e.department, ''), p.end_date
    FROM probation_periods p
    JOIN employees e ON e.id = p.employee_id
    WHERE p.status = 'active' AND p.end_date BETWEEN $1 AND $2
    ORDER BY p.end_date
  `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UrgentProbation
	for rows.Next() {
		var p UrgentProbation
		if err := rows.Scan(&p.ID, &p.EmployeeName, &p.EmployeeNumber, &p.Department, &p.EndDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) UrgentContracts(ctx context.Context, from, to time.Time) ([]UrgentContract, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT c.id, c.contract_number, e.name, e.employee_number,
           COALESCE(e.department, ''), c.end_date
    FROM contracts c
    JOIN employees e ON e.id = c.employee_id
    WHERE c.status = 'active' AND c.end_date BETWEEN $1 AND $2
    ORDER BY c.end_date
  `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UrgentContract
	for rows.Next() {
		var c UrgentContract
		if err := rows.Scan(&c.ID, &c.ContractNumber, &c.EmployeeName, &c.EmployeeNumber, &c.Department, &c.EndDate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
