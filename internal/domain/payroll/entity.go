package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
)

// PayrollRun is one generated payroll for a fixed date range. Runs for
// overlapping ranges must never coexist; the storage layer enforces this
// with a range exclusion constraint.
type PayrollRun struct {
	ID              string
	Period          string
	StartDate       time.Time
	EndDate         time.Time
	GrossAmount     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetAmount       decimal.Decimal
	Status          RunStatus
	CreatedAt       time.Time
}

// PayrollEntry is one employee's line in a run. Entries live and die with
// their run. Tax, social and health deductions are placeholders pinned to
// zero until statutory policy lands.
type PayrollEntry struct {
	ID         string
	RunID      string
	EmployeeID string

	BaseSalary  decimal.Decimal
	BonusAmount decimal.Decimal

	StandardWorkingDays int
	ActualWorkingDays   int
	VacationDays        int

	LoanDeduction   decimal.Decimal
	OtherDeductions decimal.Decimal
	TaxDeduction    decimal.Decimal
	SocialDeduction decimal.Decimal
	HealthDeduction decimal.Decimal

	GrossPay decimal.Decimal
	NetPay   decimal.Decimal

	// Per-category breakdowns keyed by event type. A category disabled by
	// scenario toggles is absent from the map, which is how callers tell
	// "suppressed" from "computed as zero".
	AdditionsDetail  map[string]decimal.Decimal
	DeductionsDetail map[string]decimal.Decimal

	AdjustmentReason *string

	CreatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// Deductions sums every deduction category on the entry.
func (e PayrollEntry) Deductions() decimal.Decimal {
	return e.LoanDeduction.
		Add(e.OtherDeductions).
		Add(e.TaxDeduction).
		Add(e.SocialDeduction).
		Add(e.HealthDeduction)
}
