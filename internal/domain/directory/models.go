package directory

import "time"

type Department struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ManagerCode   string `json:"managerCode"`
	EmployeeCount int    `json:"employeeCount"`
}

type Employee struct {
	Code           int64      `json:"code"`
	FullName       string     `json:"fullName"`
	Position       string     `json:"position"`
	Division       string     `json:"division"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	DepartmentID   int64      `json:"departmentId"`
	DepartmentName string     `json:"departmentName"`
	Username       string     `json:"username"`
	Role           string     `json:"role"`
	AccountStatus  string     `json:"accountStatus"`
}

type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	Status       string
	EmployeeCode int64
}

// NewEmployee is the HR onboarding payload: an employee and its linked
// account are created together.
type NewEmployee struct {
	FullName     string
	Position     string
	Division     string
	StartDate    *time.Time
	DepartmentID int64
	Username     string
	Password     string
	Role         string
}
