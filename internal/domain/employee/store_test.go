package employee_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/employee"
)

func employeeRows(number, name string) *pgxmock.Rows {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	hire := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return pgxmock.NewRows([]string{
		"id", "employee_number", "name", "email", "phone", "location",
		"department", "position", "direct_manager", "national_id",
		"national_id_enc", "hire_date", "status", "created_at", "updated_at",
	}).AddRow(
		"e1", number, name, "a@b.com", "", "Riyadh",
		"Engineering", "Developer", "", "1012345678",
		[]byte(nil), hire, employee.StatusActive, now, now,
	)
}

func TestStoreGetByNumber(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT(.+)FROM employees").
		WithArgs("EMP-001").
		WillReturnRows(employeeRows("EMP-001", "Sara"))

	store := employee.NewStore(mock, nil)
	emp, err := store.GetByNumber(context.Background(), "EMP-001")
	require.NoError(t, err)
	require.NotNil(t, emp)

	assert.Equal(t, "EMP-001", emp.EmployeeNumber)
	assert.Equal(t, "Engineering", emp.Department)
	assert.Equal(t, "1012345678", emp.NationalID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetByNumberMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT(.+)FROM employees").
		WithArgs("EMP-404").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	store := employee.NewStore(mock, nil)
	emp, err := store.GetByNumber(context.Background(), "EMP-404")
	require.NoError(t, err)
	assert.Nil(t, emp, "unknown code resolves to nil, not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDeleteCascades(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM probation_periods").
		WithArgs("e1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM contracts").
		WithArgs("e1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("DELETE FROM employees").
		WithArgs("e1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	store := employee.NewStore(mock, nil)
	require.NoError(t, store.Delete(context.Background(), "e1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDeleteAllOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM probation_periods").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("DELETE FROM contracts").
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec("DELETE FROM employees").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()

	store := employee.NewStore(mock, nil)
	require.NoError(t, store.DeleteAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
