package contract

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const contractColumns = `
    c.id, c.employee_id, c.contract_number, c.contract_type,
    c.start_date, c.end_date, c.duration_months, c.salary, c.status,
    COALESCE(c.notes, ''),
    COALESCE(c.renewal_notes, ''),
    c.created_at, c.updated_at,
    e.name, e.employee_number,
    COALESCE(e.department, ''),
    COALESCE(e.position, '')`

func scanContract(row pgx.Row) (*Contract, error) {
	var c Contract
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.ContractNumber, &c.ContractType,
		&c.StartDate, &c.EndDate, &c.DurationMonths, &c.Salary, &c.Status,
		&c.Notes, &c.RenewalNotes,
		&c.CreatedAt, &c.UpdatedAt,
		&c.EmployeeName, &c.EmployeeNumber, &c.Department, &c.Position,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every contract with its employee joined in. Indefinite
// contracts sort last because NULL end dates rank after dated ones.
func (s *Store) List(ctx context.Context) ([]Contract, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+contractColumns+`
    FROM contracts c
    JOIN employees e ON e.id = c.employee_id
    ORDER BY c.end_date NULLS LAST, c.contract_number
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*Contract, error) {
	return scanContract(s.DB.QueryRow(ctx, `
    SELECT`+contractColumns+`
    FROM contracts c
    JOIN employees e ON e.id = c.employee_id
    WHERE c.id = $1
  `, id))
}

// CountForEmployee reports how many contracts an employee has ever
// held, renewed and terminated ones included. Used for numbering.
func (s *Store) CountForEmployee(ctx context.Context, employeeID string) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(*) FROM contracts WHERE employee_id = $1
  `, employeeID).Scan(&n)
	return n, err
}

func (s *Store) Create(ctx context.Context, c Contract) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO contracts (employee_id, contract_number, contract_type,
      start_date, end_date, duration_months, salary, status, notes, renewal_notes)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING id
  `,
		c.EmployeeID, c.ContractNumber, c.ContractType,
		c.StartDate, c.EndDate, c.DurationMonths, c.Salary, c.Status,
		nullIfEmpty(c.Notes), nullIfEmpty(c.RenewalNotes),
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, c Contract) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE contracts
    SET contract_type = $1,
        start_date = $2,
        end_date = $3,
        duration_months = $4,
        salary = $5,
        status = $6,
        notes = $7,
        renewal_notes = $8,
        updated_at = now()
    WHERE id = $9
  `, c.ContractType, c.StartDate, c.EndDate, c.DurationMonths, c.Salary, c.Status,
		nullIfEmpty(c.Notes), nullIfEmpty(c.RenewalNotes), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("contract not found")
	}
	return nil
}

// Renew marks the old contract renewed and inserts its replacement in
// one transaction. The replacement keeps the employee, gets the next
// sequence number derived from the employee's contract count, and
// always starts out active.
func (s *Store) Renew(ctx context.Context, id string, r Renewal) (*Contract, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var employeeID, employeeNumber string
	err = tx.QueryRow(ctx, `
    SELECT c.employee_id, e.employee_number
    FROM contracts c
    JOIN employees e ON e.id = c.employee_id
    WHERE c.id = $1
  `, id).Scan(&employeeID, &employeeNumber)
	if err != nil {
		return nil, err
	}

	cmd, err := tx.Exec(ctx, `
    UPDATE contracts
    SET status = $1, updated_at = now()
    WHERE id = $2
  `, StatusRenewed, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, errors.New("contract not found")
	}

	var existing int
	if err := tx.QueryRow(ctx, `
    SELECT COUNT(*) FROM contracts WHERE employee_id = $1
  `, employeeID).Scan(&existing); err != nil {
		return nil, err
	}

	next := Contract{
		EmployeeID:     employeeID,
		ContractNumber: NextNumber(employeeNumber, existing),
		ContractType:   DeriveType(r.EndDate),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		DurationMonths: r.DurationMonths,
		Salary:         r.Salary,
		Status:         StatusActive,
		RenewalNotes:   r.RenewalNotes,
	}
	err = tx.QueryRow(ctx, `
    INSERT INTO contracts (employee_id, contract_number, contract_type,
      start_date, end_date, duration_months, salary, status, renewal_notes)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING id, created_at, updated_at
  `,
		next.EmployeeID, next.ContractNumber, next.ContractType,
		next.StartDate, next.EndDate, next.DurationMonths, next.Salary,
		next.Status, nullIfEmpty(next.RenewalNotes),
	).Scan(&next.ID, &next.CreatedAt, &next.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("contract not found")
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, `DELETE FROM contracts`)
	return err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
