package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("Employee not found")
	ErrDepartmentNotFound = errors.New("Department not found")
)
