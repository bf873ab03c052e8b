package directory

import "errors"

var (
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrDepartmentNameExists  = errors.New("department name already exists")
	ErrDepartmentHasStaff    = errors.New("department still has employees")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeHasAssessment = errors.New("employee has existing assessments")
	ErrUsernameExists        = errors.New("username already exists")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidRole           = errors.New("invalid account role")
)
