package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccrualPolicy governs how a leave-type balance grows over time.
type AccrualPolicy struct {
	ID                   string
	LeaveType            string
	AccrualRatePerMonth  decimal.Decimal
	MaxBalanceDays       *decimal.Decimal
	CarryoverLimitDays   *decimal.Decimal
	AllowNegativeBalance bool
	EffectiveFrom        time.Time
	EffectiveTo          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ActiveOn reports whether the policy's effective window covers the date.
func (p AccrualPolicy) ActiveOn(date time.Time) bool {
	if date.Before(p.EffectiveFrom) {
		return false
	}
	return p.EffectiveTo == nil || !date.After(*p.EffectiveTo)
}

// EmployeePolicy assigns an accrual policy to an employee, optionally
// overriding the monthly rate, within its own effective window.
type EmployeePolicy struct {
	ID            string
	EmployeeID    string
	PolicyID      string
	OverrideRate  *decimal.Decimal
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a EmployeePolicy) ActiveOn(date time.Time) bool {
	if date.Before(a.EffectiveFrom) {
		return false
	}
	return a.EffectiveTo == nil || !date.After(*a.EffectiveTo)
}

// Balance is the running leave balance per (employee, leave type, year).
type Balance struct {
	ID           string
	EmployeeID   string
	LeaveType    string
	Year         int
	BalanceDays  decimal.Decimal
	AccruedDays  decimal.Decimal
	ConsumedDays decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
