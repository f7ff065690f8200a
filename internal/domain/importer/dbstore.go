package importer

import (
	"context"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/contract"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/employee"
)

// DBStore adapts the employee and contract stores to the reconciler.
type DBStore struct {
	Employees *employee.Store
	Contracts *contract.Store
}

func (s *DBStore) EmployeeIDByNumber(ctx context.Context, employeeNumber string) (string, error) {
	emp, err := s.Employees.GetByNumber(ctx, employeeNumber)
	if err != nil {
		return "", err
	}
	if emp == nil {
		return "", nil
	}
	return emp.ID, nil
}

func (s *DBStore) CreateEmployee(ctx context.Context, emp employee.Employee) (string, error) {
	return s.Employees.Create(ctx, emp)
}

func (s *DBStore) CreateContract(ctx context.Context, c contract.Contract) (string, error) {
	return s.Contracts.Create(ctx, c)
}
