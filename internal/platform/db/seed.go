package db

import (
	"context"
	"strings"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/auth"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/config"
)

// Seed creates the initial admin account and its permission record
// when they do not exist yet.
func Seed(ctx context.Context, q Querier, cfg config.Config) error {
	name := strings.TrimSpace(cfg.SeedAdminName)
	if name == "" || strings.TrimSpace(cfg.SeedAdminPassword) == "" {
		return nil
	}
	if err := ensureAdminUser(ctx, q, name, cfg.SeedAdminPassword); err != nil {
		return err
	}
	return ensureAdminPermissions(ctx, q, name)
}

func ensureAdminUser(ctx context.Context, q Querier, name, password string) error {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM users WHERE name = $1", name).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return q.QueryRow(ctx,
		"INSERT INTO users (name, password_hash, role) VALUES ($1, $2, $3) RETURNING id",
		name, hash, auth.RoleAdmin,
	).Scan(&id)
}

// ensureAdminPermissions writes a full-access permission row for the
// admin. The role already bypasses flag checks; the row exists so the
// permissions screen shows the account like any other.
func ensureAdminPermissions(ctx context.Context, q Querier, name string) error {
	_, err := q.Exec(ctx, `
    INSERT INTO user_permissions (user_name,
      can_add_employees, can_edit_employees, can_delete_employees,
      can_add_probations, can_evaluate_probations, can_delete_probations,
      can_add_contracts, can_edit_contracts, can_renew_contracts,
      can_delete_contracts, can_import_data)
    VALUES ($1, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE)
    ON CONFLICT (user_name) DO NOTHING
  `, name)
	return err
}
