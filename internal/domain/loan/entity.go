package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	StatusPending   LoanStatus = "pending"
	StatusActive    LoanStatus = "active"
	StatusPaused    LoanStatus = "paused"
	StatusCompleted LoanStatus = "completed"
)

// Loan is an employee loan repaid through payroll deductions.
// RemainingAmount only ever decreases; the loan completes exactly when it
// reaches zero.
type Loan struct {
	ID               string
	EmployeeID       string
	Amount           decimal.Decimal
	MonthlyDeduction decimal.Decimal
	RemainingAmount  decimal.Decimal
	Status           LoanStatus
	IssuedDate       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DeductionFor returns the amount this loan contributes to a payroll
// period: the monthly deduction, capped by what is still owed.
func (l Loan) DeductionFor() decimal.Decimal {
	if l.Status != StatusActive || !l.RemainingAmount.IsPositive() {
		return decimal.Zero
	}
	if l.RemainingAmount.LessThan(l.MonthlyDeduction) {
		return l.RemainingAmount
	}
	return l.MonthlyDeduction
}
