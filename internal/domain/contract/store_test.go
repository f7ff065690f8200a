package contract_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/contract"
)

func TestStoreRenew(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	months := 12

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT c.employee_id, e.employee_number").
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"employee_id", "employee_number"}).
			AddRow("e1", "EMP-007"))
	mock.ExpectExec("UPDATE contracts").
		WithArgs(contract.StatusRenewed, "c1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("e1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("INSERT INTO contracts").
		WithArgs("e1", "EMP-007-3", contract.TypeFixed, start, &end, &months, (*float64)(nil), contract.StatusActive, nil).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("c2", now, now))
	mock.ExpectCommit()

	store := contract.NewStore(mock)
	next, err := store.Renew(context.Background(), "c1", contract.Renewal{
		StartDate:      start,
		EndDate:        &end,
		DurationMonths: &months,
	})
	require.NoError(t, err)

	assert.Equal(t, "c2", next.ID)
	assert.Equal(t, "EMP-007-3", next.ContractNumber)
	assert.Equal(t, contract.TypeFixed, next.ContractType)
	assert.Equal(t, contract.StatusActive, next.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A renewal whose window already closed is still inserted as active.
// Expiry is recomputed against the calendar on read, not baked in at
// insert time.
func TestStoreRenewBackdatedStaysActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT c.employee_id, e.employee_number").
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"employee_id", "employee_number"}).
			AddRow("e1", "EMP-009"))
	mock.ExpectExec("UPDATE contracts").
		WithArgs(contract.StatusRenewed, "c1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("e1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO contracts").
		WithArgs("e1", "EMP-009-2", contract.TypeFixed, start, &end, (*int)(nil), (*float64)(nil), contract.StatusActive, nil).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("c2", now, now))
	mock.ExpectCommit()

	store := contract.NewStore(mock)
	next, err := store.Renew(context.Background(), "c1", contract.Renewal{
		StartDate: start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, contract.StatusActive, next.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRenewMissingContract(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT c.employee_id, e.employee_number").
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows([]string{"employee_id", "employee_number"}))
	mock.ExpectRollback()

	store := contract.NewStore(mock)
	_, err = store.Renew(context.Background(), "nope", contract.Renewal{
		StartDate: time.Now(),
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE contracts").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := contract.NewStore(mock)
	err = store.Update(context.Background(), "missing", contract.Contract{
		ContractType: contract.TypeIndefinite,
		StartDate:    time.Now(),
		Status:       contract.StatusActive,
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
