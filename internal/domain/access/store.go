package access

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

const permissionColumns = `
    id, user_name, department,
    can_add_employees, can_edit_employees, can_delete_employees,
    can_add_probations, can_evaluate_probations, can_delete_probations,
    can_add_contracts, can_edit_contracts, can_renew_contracts, can_delete_contracts,
    can_import_data, created_at, updated_at`

func scanPermission(row pgx.Row) (*UserPermission, error) {
	var perm UserPermission
	err := row.Scan(
		&perm.ID, &perm.UserName, &perm.Department,
		&perm.CanAddEmployees, &perm.CanEditEmployees, &perm.CanDeleteEmployees,
		&perm.CanAddProbations, &perm.CanEvaluateProbations, &perm.CanDeleteProbations,
		&perm.CanAddContracts, &perm.CanEditContracts, &perm.CanRenewContracts, &perm.CanDeleteContracts,
		&perm.CanImportData, &perm.CreatedAt, &perm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

func (s *Store) List(ctx context.Context) ([]UserPermission, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+permissionColumns+`
    FROM user_permissions
    ORDER BY user_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserPermission
	for rows.Next() {
		perm, err := scanPermission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *perm)
	}
	return out, rows.Err()
}

// GetByUserName returns (nil, nil) when no record exists for the user;
// callers treat that as "no capabilities granted".
func (s *Store) GetByUserName(ctx context.Context, userName string) (*UserPermission, error) {
	perm, err := scanPermission(s.DB.QueryRow(ctx, `
    SELECT`+permissionColumns+`
    FROM user_permissions
    WHERE user_name = $1
  `, userName))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return perm, nil
}

func (s *Store) Get(ctx context.Context, id string) (*UserPermission, error) {
	return scanPermission(s.DB.QueryRow(ctx, `
    SELECT`+permissionColumns+`
    FROM user_permissions
    WHERE id = $1
  `, id))
}

func (s *Store) Create(ctx context.Context, perm UserPermission) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO user_permissions (user_name, department,
      can_add_employees, can_edit_employees, can_delete_employees,
      can_add_probations, can_evaluate_probations, can_delete_probations,
      can_add_contracts, can_edit_contracts, can_renew_contracts, can_delete_contracts,
      can_import_data)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id
  `,
		perm.UserName, perm.Department,
		perm.CanAddEmployees, perm.CanEditEmployees, perm.CanDeleteEmployees,
		perm.CanAddProbations, perm.CanEvaluateProbations, perm.CanDeleteProbations,
		perm.CanAddContracts, perm.CanEditContracts, perm.CanRenewContracts, perm.CanDeleteContracts,
		perm.CanImportData,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, perm UserPermission) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE user_permissions
    SET user_name = $1,
        department = $2,
        can_add_employees = $3,
        can_edit_employees = $4,
        can_delete_employees = $5,
        can_add_probations = $6,
        can_evaluate_probations = $7,
        can_delete_probations = $8,
        can_add_contracts = $9,
        can_edit_contracts = $10,
        can_renew_contracts = $11,
        can_delete_contracts = $12,
        can_import_data = $13,
        updated_at = now()
    WHERE id = $14
  `,
		perm.UserName, perm.Department,
		perm.CanAddEmployees, perm.CanEditEmployees, perm.CanDeleteEmployees,
		perm.CanAddProbations, perm.CanEvaluateProbations, perm.CanDeleteProbations,
		perm.CanAddContracts, perm.CanEditContracts, perm.CanRenewContracts, perm.CanDeleteContracts,
		perm.CanImportData, id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("permission record not found")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, `DELETE FROM user_permissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("permission record not found")
	}
	return nil
}
