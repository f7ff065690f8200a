package probation

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

const probationColumns = `
    p.id, p.employee_id, p.start_date, p.end_date, p.duration_months, p.status,
    COALESCE(p.notes, ''),
    COALESCE(p.task_performance, ''),
    p.task_completion_rate,
    COALESCE(p.task_notes, ''),
    COALESCE(p.department_evaluation, ''),
    COALESCE(p.supervisor_evaluation, ''),
    COALESCE(p.evaluation_notes, ''),
    COALESCE(p.evaluated_by, ''),
    p.evaluation_date,
    p.created_at, p.updated_at,
    e.name, e.employee_number,
    COALESCE(e.department, ''),
    COALESCE(e.position, '')`

func scanProbation(row pgx.Row) (*ProbationPeriod, error) {
	var p ProbationPeriod
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.StartDate, &p.EndDate, &p.DurationMonths, &p.Status, &p.Notes,
		&p.TaskPerformance, &p.TaskCompletionRate, &p.TaskNotes,
		&p.DepartmentEvaluation, &p.SupervisorEvaluation, &p.EvaluationNotes,
		&p.EvaluatedBy, &p.EvaluationDate,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeNumber, &p.Department, &p.Position,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every probation period with its employee joined in,
// soonest deadline first.
func (s *Store) List(ctx context.Context) ([]ProbationPeriod, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+probationColumns+`
    FROM probation_periods p
    JOIN employees e ON e.id = p.employee_id
    ORDER BY p.end_date
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProbationPeriod
	for rows.Next() {
		p, err := scanProbation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*ProbationPeriod, error) {
	return scanProbation(s.DB.QueryRow(ctx, `
    SELECT`+probationColumns+`
    FROM probation_periods p
    JOIN employees e ON e.id = p.employee_id
    WHERE p.id = $1
  `, id))
}

func (s *Store) Create(ctx context.Context, p ProbationPeriod) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO probation_periods (employee_id, start_date, end_date, duration_months, status, notes)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, p.EmployeeID, p.StartDate, p.EndDate, p.DurationMonths, p.Status, nullIfEmpty(p.Notes)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, p ProbationPeriod) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE probation_periods
    SET start_date = $1,
        end_date = $2,
        duration_months = $3,
        notes = $4,
        updated_at = now()
    WHERE id = $5
  `, p.StartDate, p.EndDate, p.DurationMonths, nullIfEmpty(p.Notes), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("probation period not found")
	}
	return nil
}

// Evaluate records a reviewer outcome and moves the period into its
// final status in the same statement.
func (s *Store) Evaluate(ctx context.Context, id string, ev Evaluation) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE probation_periods
    SET status = $1,
        task_performance = $2,
        task_completion_rate = $3,
        task_notes = $4,
        department_evaluation = $5,
        supervisor_evaluation = $6,
        evaluation_notes = $7,
        evaluated_by = $8,
        evaluation_date = $9,
        updated_at = now()
    WHERE id = $10
  `,
		ev.Status, nullIfEmpty(ev.TaskPerformance), ev.TaskCompletionRate,
		nullIfEmpty(ev.TaskNotes), nullIfEmpty(ev.DepartmentEvaluation),
		nullIfEmpty(ev.SupervisorEvaluation), nullIfEmpty(ev.EvaluationNotes),
		nullIfEmpty(ev.EvaluatedBy), ev.EvaluationDate, id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("probation period not found")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, `DELETE FROM probation_periods WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("probation period not found")
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, `DELETE FROM probation_periods`)
	return err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
