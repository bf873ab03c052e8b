package directory

import (
	"context"
	"strings"

	"assessment/internal/auth"
)

var validRoles = map[string]bool{
	"EMPLOYEE":   true,
	"SUPERVISOR": true,
	"MANAGER":    true,
}

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.Store.ListDepartments(ctx)
}

func (s *Service) CreateDepartment(ctx context.Context, name, managerCode string) (int64, error) {
	return s.Store.CreateDepartment(ctx, strings.TrimSpace(name), strings.TrimSpace(managerCode))
}

func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	return s.Store.DeleteDepartment(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, departmentID int64) ([]Employee, error) {
	return s.Store.ListEmployees(ctx, departmentID)
}

func (s *Service) EmployeeByCode(ctx context.Context, code int64) (Employee, error) {
	return s.Store.EmployeeByCode(ctx, code)
}

func (s *Service) Onboard(ctx context.Context, in NewEmployee) (int64, error) {
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	if !validRoles[in.Role] {
		return 0, ErrInvalidRole
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return 0, err
	}
	return s.Store.CreateEmployee(ctx, in, hash)
}

func (s *Service) DeleteEmployee(ctx context.Context, code int64) error {
	return s.Store.DeleteEmployee(ctx, code)
}

func (s *Service) AccountByUsername(ctx context.Context, username string) (Account, error) {
	return s.Store.AccountByUsername(ctx, username)
}
