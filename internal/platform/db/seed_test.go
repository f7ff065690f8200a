package db_test

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/config"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
)

func seedConfig() config.Config {
	return config.Config{
		SeedAdminName:     "admin",
		SeedAdminPassword: "ChangeMe123!",
	}
}

func TestSeedCreatesAdminAndPermissions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id FROM users").
		WithArgs("admin").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("admin", pgxmock.AnyArg(), "admin").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("u1"))
	mock.ExpectExec("INSERT INTO user_permissions").
		WithArgs("admin").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, db.Seed(context.Background(), mock, seedConfig()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedExistingAdminStillEnsuresPermissions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id FROM users").
		WithArgs("admin").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("u1"))
	mock.ExpectExec("INSERT INTO user_permissions").
		WithArgs("admin").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, db.Seed(context.Background(), mock, seedConfig()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedSkipsWithoutCredentials(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	require.NoError(t, db.Seed(context.Background(), mock, config.Config{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
