package payroll

import "errors"

var (
	ErrRunNotFound      = errors.New("Payroll run not found")
	ErrPeriodOverlap    = errors.New("Payroll period overlaps an existing run")
	ErrNoActiveEmployee = errors.New("No active employees for payroll period")
)
