package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/reports"
)

func TestStoreCounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	from := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	mock.ExpectQuery("SELECT").
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"c1", "c2", "c3", "c4", "c5"}).
			AddRow(12, 4, 2, 9, 3))

	store := reports.NewStore(mock)
	stats, err := store.Counts(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalEmployees)
	assert.Equal(t, 4, stats.ActiveProbations)
	assert.Equal(t, 2, stats.ExpiringProbations)
	assert.Equal(t, 9, stats.ActiveContracts)
	assert.Equal(t, 3, stats.ExpiringContracts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUrgentContracts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	from := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)
	end := from.AddDate(0, 0, 10)

	mock.ExpectQuery("SELECT(.+)FROM contracts").
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "contract_number", "name", "employee_number", "department", "end_date",
		}).AddRow("c1", "EMP-001-1", "Sara", "EMP-001", "Engineering", end))

	store := reports.NewStore(mock)
	contracts, err := store.UrgentContracts(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "EMP-001-1", contracts[0].ContractNumber)
	assert.Equal(t, end, contracts[0].EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
