package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type LoanRepository interface {
	GetByID(ctx context.Context, id string) (Loan, error)
	ListActiveByEmployee(ctx context.Context, employeeID string) ([]Loan, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Loan, error)

	// ApplyDeduction decreases the remaining amount and flips the status to
	// completed when it reaches zero. Fails with ErrInvalidDeduction when
	// the amount exceeds what is still owed; the remaining amount never
	// goes negative.
	ApplyDeduction(ctx context.Context, id string, amount decimal.Decimal) (Loan, error)

	// PauseActiveByEmployee / ResumePausedByEmployee back the leave
	// workflow's loan side effects. They return the ids they touched so
	// completion can resume exactly what approval paused.
	PauseActiveByEmployee(ctx context.Context, employeeID string) ([]string, error)
	ResumePausedByEmployee(ctx context.Context, employeeID string) ([]string, error)
}
