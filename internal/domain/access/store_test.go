package access_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/access"
)

func permissionRows() *pgxmock.Rows {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return pgxmock.NewRows([]string{
		"id", "user_name", "department",
		"can_add_employees", "can_edit_employees", "can_delete_employees",
		"can_add_probations", "can_evaluate_probations", "can_delete_probations",
		"can_add_contracts", "can_edit_contracts", "can_renew_contracts", "can_delete_contracts",
		"can_import_data", "created_at", "updated_at",
	}).AddRow(
		"p1", "sara", nil,
		true, true, false,
		true, true, false,
		true, false, true, false,
		true, now, now,
	)
}

func TestStoreGetByUserName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT(.+)FROM user_permissions").
		WithArgs("sara").
		WillReturnRows(permissionRows())

	store := access.NewStore(mock)
	perm, err := store.GetByUserName(context.Background(), "sara")
	require.NoError(t, err)
	require.NotNil(t, perm)

	assert.Equal(t, "sara", perm.UserName)
	assert.Nil(t, perm.Department)
	assert.True(t, perm.CanRenewContracts)
	assert.False(t, perm.CanDeleteContracts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetByUserNameMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT(.+)FROM user_permissions").
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	store := access.NewStore(mock)
	perm, err := store.GetByUserName(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, perm, "missing record resolves to nil, not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE user_permissions").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := access.NewStore(mock)
	err = store.Update(context.Background(), "missing", access.UserPermission{UserName: "sara"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
