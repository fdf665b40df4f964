package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusOnLeave  EmploymentStatus = "on_leave"
	StatusResigned EmploymentStatus = "resigned"
)

type Employee struct {
	ID           string
	DepartmentID string
	FullName     string
	Email        string

	MonthlySalary decimal.Decimal
	// Working days the salary divides over; 26 unless overridden per employee.
	StandardWorkingDays int

	Status   EmploymentStatus
	HireDate time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	DepartmentName *string
}

type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
