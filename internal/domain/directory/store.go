package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT d.department_id, d.department_name, d.manager_code, COUNT(e.code)
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.department_id
		GROUP BY d.department_id, d.department_name, d.manager_code
		ORDER BY d.department_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var department Department
		if err := rows.Scan(&department.ID, &department.Name, &department.ManagerCode, &department.EmployeeCount); err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}
	return departments, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, name, managerCode string) (int64, error) {
	var exists int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM departments WHERE department_name = $1", name).Scan(&exists); err != nil {
		return 0, err
	}
	if exists > 0 {
		return 0, ErrDepartmentNameExists
	}

	var id int64
	err := s.DB.QueryRow(ctx,
		"INSERT INTO departments (department_name, manager_code) VALUES ($1, $2) RETURNING department_id",
		name, managerCode).Scan(&id)
	return id, err
}

func (s *Store) DeleteDepartment(ctx context.Context, id int64) error {
	var staff int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM employees WHERE department_id = $1", id).Scan(&staff); err != nil {
		return err
	}
	if staff > 0 {
		return ErrDepartmentHasStaff
	}

	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE department_id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

const employeeSelect = `
	SELECT e.code, e.full_name, e.position, e.division, e.start_date,
	       e.department_id, d.department_name, a.username, a.role, a.status
	FROM employees e
	JOIN departments d ON d.department_id = e.department_id
	JOIN accounts a ON a.id = e.account_id
`

func (s *Store) ListEmployees(ctx context.Context, departmentID int64) ([]Employee, error) {
	query := employeeSelect
	args := []any{}
	if departmentID > 0 {
		query += " WHERE e.department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY e.code"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *Store) EmployeeByCode(ctx context.Context, code int64) (Employee, error) {
	row := s.DB.QueryRow(ctx, employeeSelect+" WHERE e.code = $1", code)
	employee, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return employee, err
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var employee Employee
	err := row.Scan(
		&employee.Code,
		&employee.FullName,
		&employee.Position,
		&employee.Division,
		&employee.StartDate,
		&employee.DepartmentID,
		&employee.DepartmentName,
		&employee.Username,
		&employee.Role,
		&employee.AccountStatus,
	)
	return employee, err
}

// CreateEmployee inserts the account and the employee row in one
// transaction so onboarding never leaves an orphan account behind.
func (s *Store) CreateEmployee(ctx context.Context, in NewEmployee, passwordHash string) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var taken int
	if err := tx.QueryRow(ctx,
		"SELECT COUNT(1) FROM accounts WHERE username = $1", in.Username).Scan(&taken); err != nil {
		return 0, err
	}
	if taken > 0 {
		return 0, ErrUsernameExists
	}

	var departmentExists int
	if err := tx.QueryRow(ctx,
		"SELECT COUNT(1) FROM departments WHERE department_id = $1", in.DepartmentID).Scan(&departmentExists); err != nil {
		return 0, err
	}
	if departmentExists == 0 {
		return 0, ErrDepartmentNotFound
	}

	var accountID int64
	if err := tx.QueryRow(ctx,
		"INSERT INTO accounts (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id",
		in.Username, passwordHash, in.Role).Scan(&accountID); err != nil {
		return 0, err
	}

	var code int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO employees (full_name, position, division, start_date, account_id, department_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING code
	`, in.FullName, in.Position, in.Division, in.StartDate, accountID, in.DepartmentID).Scan(&code); err != nil {
		return 0, err
	}

	return code, tx.Commit(ctx)
}

func (s *Store) DeleteEmployee(ctx context.Context, code int64) error {
	var assessments int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM summary_assessments WHERE employee_code = $1", code).Scan(&assessments); err != nil {
		return err
	}
	if assessments > 0 {
		return ErrEmployeeHasAssessment
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var accountID int64
	err = tx.QueryRow(ctx, "SELECT account_id FROM employees WHERE code = $1", code).Scan(&accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrEmployeeNotFound
	}
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM employees WHERE code = $1", code); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM accounts WHERE id = $1", accountID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) AccountByUsername(ctx context.Context, username string) (Account, error) {
	var account Account
	err := s.DB.QueryRow(ctx, `
		SELECT a.id, a.username, a.password_hash, a.role, a.status, COALESCE(e.code, 0)
		FROM accounts a
		LEFT JOIN employees e ON e.account_id = a.id
		WHERE a.username = $1
	`, username).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Role,
		&account.Status,
		&account.EmployeeCode,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return account, err
}
