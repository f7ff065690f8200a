package importer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/contract"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/employee"
)

type fakeStore struct {
	employees map[string]string // code -> id
	contracts map[string]contract.Contract
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees: map[string]string{},
		contracts: map[string]contract.Contract{},
	}
}

func (f *fakeStore) EmployeeIDByNumber(_ context.Context, employeeNumber string) (string, error) {
	return f.employees[employeeNumber], nil
}

func (f *fakeStore) CreateEmployee(_ context.Context, emp employee.Employee) (string, error) {
	f.nextID++
	id := fmt.Sprintf("emp-%d", f.nextID)
	f.employees[emp.EmployeeNumber] = id
	return id, nil
}

func (f *fakeStore) CreateContract(_ context.Context, c contract.Contract) (string, error) {
	if _, dup := f.contracts[c.ContractNumber]; dup {
		return "", &pgconn.PgError{Code: "23505"}
	}
	f.contracts[c.ContractNumber] = c
	f.nextID++
	return fmt.Sprintf("con-%d", f.nextID), nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
}

func newReconciler(store Store) *Reconciler {
	return &Reconciler{Store: store, Now: fixedNow}
}

func TestRunCreatesEmployeeAndContract(t *testing.T) {
	store := newFakeStore()
	summary := newReconciler(store).Run(context.Background(), []Row{
		{
			EmployeeCode:      "EMP-001",
			Name:              "Sara",
			HireDate:          "2024-03-15",
			ContractStartDate: "2024-03-15",
			ContractEndDate:   "2026-03-14",
		},
	})

	assert.Equal(t, 1, summary.EmployeesCreated)
	assert.Equal(t, 1, summary.ContractsCreated)
	assert.Empty(t, summary.Errors)

	c, ok := store.contracts["EMP-001-1"]
	require.True(t, ok)
	assert.Equal(t, contract.TypeFixed, c.ContractType)
	assert.Equal(t, contract.StatusActive, c.Status)
}

func TestRunEmployeeIdempotentContractNot(t *testing.T) {
	store := newFakeStore()
	rows := []Row{
		{EmployeeCode: "EMP-001", Name: "Sara", HireDate: "2024-03-15", ContractStartDate: "2024-03-15"},
		{EmployeeCode: "EMP-001", Name: "Sara", HireDate: "2024-03-15", ContractStartDate: "2024-03-15"},
	}
	summary := newReconciler(store).Run(context.Background(), rows)

	assert.Equal(t, 1, summary.EmployeesCreated, "second row reuses the employee")
	assert.Equal(t, 1, summary.ContractsCreated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "EMP-001-1 already exists")
}

func TestRunPastEndDateExpired(t *testing.T) {
	store := newFakeStore()
	summary := newReconciler(store).Run(context.Background(), []Row{
		{
			EmployeeCode:      "EMP-002",
			Name:              "Omar",
			HireDate:          "2020-01-01",
			ContractStartDate: "2020-01-01",
			ContractEndDate:   "2021-01-01",
		},
	})
	require.Empty(t, summary.Errors)

	c := store.contracts["EMP-002-1"]
	assert.Equal(t, contract.TypeFixed, c.ContractType)
	assert.Equal(t, contract.StatusExpired, c.Status)
}

func TestRunIndefiniteWithoutEndDate(t *testing.T) {
	store := newFakeStore()
	summary := newReconciler(store).Run(context.Background(), []Row{
		{EmployeeCode: "EMP-003", Name: "Lina", HireDate: "2024-01-01", ContractStartDate: "2024-01-01"},
	})
	require.Empty(t, summary.Errors)

	c := store.contracts["EMP-003-1"]
	assert.Equal(t, contract.TypeIndefinite, c.ContractType)
	assert.Equal(t, contract.StatusActive, c.Status)
}

func TestRunMissingHireDate(t *testing.T) {
	store := newFakeStore()
	summary := newReconciler(store).Run(context.Background(), []Row{
		{EmployeeCode: "EMP-004", Name: "Nora"},
	})

	assert.Equal(t, 0, summary.EmployeesCreated)
	assert.Equal(t, 0, summary.ContractsCreated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "row 2")
}

func TestRunBadRowDoesNotAbortBatch(t *testing.T) {
	store := newFakeStore()
	rows := []Row{
		{EmployeeCode: "EMP-005", Name: "Ali", HireDate: "not a date"},
		{EmployeeCode: "EMP-006", Name: "Huda", HireDate: "2024-05-01"},
	}
	summary := newReconciler(store).Run(context.Background(), rows)

	assert.Equal(t, 1, summary.EmployeesCreated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "invalid hire date")
}

func TestRunErrorsUseSourceRow(t *testing.T) {
	store := newFakeStore()
	// A blank spreadsheet line between the two data rows pushed the
	// second one down to row 4.
	summary := newReconciler(store).Run(context.Background(), []Row{
		{SourceRow: 2, EmployeeCode: "EMP-010", Name: "Ali", HireDate: "2024-05-01"},
		{SourceRow: 4, EmployeeCode: "EMP-011", Name: "Huda"},
	})

	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "row 4")
}

func TestRunContractDurationMonths(t *testing.T) {
	store := newFakeStore()
	summary := newReconciler(store).Run(context.Background(), []Row{
		{
			EmployeeCode:      "EMP-012",
			Name:              "Rana",
			HireDate:          "2024-01-01",
			ContractStartDate: "2024-01-01",
			ContractEndDate:   "2025-12-31",
			ContractDuration:  "24 months",
		},
	})
	require.Empty(t, summary.Errors)

	c := store.contracts["EMP-012-1"]
	require.NotNil(t, c.DurationMonths)
	assert.Equal(t, 24, *c.DurationMonths)
	assert.Empty(t, c.Notes, "the duration cell is not free text")
}

func TestParseDurationMonths(t *testing.T) {
	if got := parseDurationMonths("12"); got == nil || *got != 12 {
		t.Errorf("plain number: got %v", got)
	}
	if got := parseDurationMonths("6 months"); got == nil || *got != 6 {
		t.Errorf("number with unit: got %v", got)
	}
	if got := parseDurationMonths("one year"); got != nil {
		t.Errorf("words: got %v", got)
	}
	if got := parseDurationMonths(""); got != nil {
		t.Errorf("empty: got %v", got)
	}
}

func TestRunContractSequence(t *testing.T) {
	store := newFakeStore()
	rows := []Row{
		{EmployeeCode: "EMP-007", Name: "Zain", HireDate: "2022-01-01", ContractStartDate: "2022-01-01", ContractSequence: "1"},
		{EmployeeCode: "EMP-007", Name: "Zain", HireDate: "2022-01-01", ContractStartDate: "2023-01-01", ContractSequence: "2"},
	}
	summary := newReconciler(store).Run(context.Background(), rows)

	assert.Empty(t, summary.Errors)
	assert.Equal(t, 2, summary.ContractsCreated)
	assert.Contains(t, store.contracts, "EMP-007-1")
	assert.Contains(t, store.contracts, "EMP-007-2")
}
