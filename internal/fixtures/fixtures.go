package fixtures

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/employee"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/event"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/leave"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/loan"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func StrPtr(s string) *string                   { return &s }
func TimePtr(t time.Time) *time.Time            { return &t }
func DecPtr(d decimal.Decimal) *decimal.Decimal { return &d }

// ==========================================
// SAMPLE DIRECTORY
// ==========================================

func Department(id, name string) employee.Department {
	return employee.Department{ID: id, Name: name}
}

// ActiveEmployee builds an active employee with the standard 26-day month.
func ActiveEmployee(id, departmentID, name string, monthlySalary int64) employee.Employee {
	return employee.Employee{
		ID:                  id,
		DepartmentID:        departmentID,
		FullName:            name,
		Email:               name + "@example.com",
		MonthlySalary:       decimal.NewFromInt(monthlySalary),
		StandardWorkingDays: 26,
		Status:              employee.StatusActive,
		HireDate:            dateutil.NewDate(2022, time.March, 1),
	}
}

// ==========================================
// LOANS AND EVENTS
// ==========================================

func ActiveLoan(id, employeeID string, amount, monthly, remaining int64) loan.Loan {
	return loan.Loan{
		ID:               id,
		EmployeeID:       employeeID,
		Amount:           decimal.NewFromInt(amount),
		MonthlyDeduction: decimal.NewFromInt(monthly),
		RemainingAmount:  decimal.NewFromInt(remaining),
		Status:           loan.StatusActive,
		IssuedDate:       dateutil.NewDate(2024, time.January, 10),
	}
}

func OneOffEvent(id, employeeID string, t event.EventType, amount int64, date time.Time) event.EmployeeEvent {
	return event.EmployeeEvent{
		ID:             id,
		EmployeeID:     employeeID,
		Type:           t,
		Amount:         decimal.NewFromInt(amount),
		EventDate:      date,
		AffectsPayroll: true,
		Status:         event.StatusActive,
		RecurrenceType: event.RecurrenceNone,
	}
}

func MonthlyEvent(id, employeeID string, t event.EventType, amount int64, firstDate time.Time, until *time.Time) event.EmployeeEvent {
	return event.EmployeeEvent{
		ID:                id,
		EmployeeID:        employeeID,
		Type:              t,
		Amount:            decimal.NewFromInt(amount),
		EventDate:         firstDate,
		AffectsPayroll:    true,
		Status:            event.StatusActive,
		RecurrenceType:    event.RecurrenceMonthly,
		RecurrenceEndDate: until,
	}
}

// ==========================================
// LEAVE POLICIES
// ==========================================

// AnnualLeavePolicy accrues 2.5 days per month, caps the balance at 30 and
// carries over at most 10 days into a new year.
func AnnualLeavePolicy(id string) leave.AccrualPolicy {
	return leave.AccrualPolicy{
		ID:                  id,
		LeaveType:           "annual",
		AccrualRatePerMonth: decimal.RequireFromString("2.5"),
		MaxBalanceDays:      DecPtr(decimal.NewFromInt(30)),
		CarryoverLimitDays:  DecPtr(decimal.NewFromInt(10)),
		EffectiveFrom:       dateutil.NewDate(2020, time.January, 1),
	}
}

// SickLeavePolicy allows the balance to go negative.
func SickLeavePolicy(id string) leave.AccrualPolicy {
	return leave.AccrualPolicy{
		ID:                   id,
		LeaveType:            "sick",
		AccrualRatePerMonth:  decimal.NewFromInt(1),
		AllowNegativeBalance: true,
		EffectiveFrom:        dateutil.NewDate(2020, time.January, 1),
	}
}

func PolicyAssignment(id, employeeID, policyID string, overrideRate *decimal.Decimal) leave.EmployeePolicy {
	return leave.EmployeePolicy{
		ID:            id,
		EmployeeID:    employeeID,
		PolicyID:      policyID,
		OverrideRate:  overrideRate,
		EffectiveFrom: dateutil.NewDate(2022, time.March, 1),
	}
}
