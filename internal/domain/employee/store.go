package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	cryptoutil "github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/crypto"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
)

type Store struct {
	DB     db.Querier
	Crypto *cryptoutil.Service
}

func NewStore(q db.Querier, crypto *cryptoutil.Service) *Store {
	return &Store{DB: q, Crypto: crypto}
}

const employeeColumns = `
    id, employee_number, name,
    COALESCE(email, ''),
    COALESCE(phone, ''),
    COALESCE(location, ''),
    COALESCE(department, ''),
    COALESCE(position, ''),
    COALESCE(direct_manager, ''),
    COALESCE(national_id, ''),
    national_id_enc,
    hire_date, status, created_at, updated_at`

func (s *Store) scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	var nationalPlain string
	var nationalEnc []byte
	err := row.Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.Name,
		&emp.Email, &emp.Phone, &emp.Location, &emp.Department, &emp.Position,
		&emp.DirectManager, &nationalPlain, &nationalEnc,
		&emp.HireDate, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	emp.NationalID = decryptFallback(s.Crypto, nationalEnc, nationalPlain)
	return &emp, nil
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := s.scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*Employee, error) {
	return s.scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
}

// GetByNumber resolves an employee by external code. Returns (nil, nil)
// when no employee carries the code.
func (s *Store) GetByNumber(ctx context.Context, employeeNumber string) (*Employee, error) {
	emp, err := s.scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE employee_number = $1
  `, employeeNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) Create(ctx context.Context, emp Employee) (string, error) {
	nationalEnc, nationalPlain := s.encryptNationalID(emp.NationalID)
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_number, name, email, phone, location,
      department, position, direct_manager, national_id, national_id_enc,
      hire_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id
  `,
		emp.EmployeeNumber, emp.Name, nullIfEmpty(emp.Email), nullIfEmpty(emp.Phone),
		nullIfEmpty(emp.Location), nullIfEmpty(emp.Department), nullIfEmpty(emp.Position),
		nullIfEmpty(emp.DirectManager), nationalPlain, nationalEnc,
		emp.HireDate, emp.Status,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, emp Employee) error {
	nationalEnc, nationalPlain := s.encryptNationalID(emp.NationalID)
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1,
        email = $2,
        phone = $3,
        location = $4,
        department = $5,
        position = $6,
        direct_manager = $7,
        national_id = $8,
        national_id_enc = $9,
        hire_date = $10,
        status = $11,
        updated_at = now()
    WHERE id = $12
  `,
		emp.Name, nullIfEmpty(emp.Email), nullIfEmpty(emp.Phone), nullIfEmpty(emp.Location),
		nullIfEmpty(emp.Department), nullIfEmpty(emp.Position), nullIfEmpty(emp.DirectManager),
		nationalPlain, nationalEnc, emp.HireDate, emp.Status, id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("employee not found")
	}
	return nil
}

// Delete removes one employee together with its probation periods and
// contracts, children first, in a single transaction.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM probation_periods WHERE employee_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM contracts WHERE employee_id = $1`, id); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("employee not found")
	}
	return tx.Commit(ctx)
}

// DeleteAll wipes every employee and all dependent rows. The dependency
// order (probations, contracts, then employees) must hold inside one
// transaction so an interrupt cannot leave orphaned references.
func (s *Store) DeleteAll(ctx context.Context) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM probation_periods`); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM contracts`); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM employees`); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) encryptNationalID(value string) ([]byte, any) {
	if s.Crypto == nil || !s.Crypto.Configured() {
		return nil, nullIfEmpty(value)
	}
	enc, err := s.Crypto.EncryptString(value)
	if err != nil {
		return nil, nullIfEmpty(value)
	}
	return enc, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func decryptFallback(crypto *cryptoutil.Service, encrypted []byte, plain string) string {
	if crypto == nil || !crypto.Configured() || len(encrypted) == 0 {
		return plain
	}
	decrypted, err := crypto.DecryptString(encrypted)
	if err != nil {
		return plain
	}
	return decrypted
}
