package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerService owns leave balances: accrual up to a date, consumption on
// approval, and restoration on cancellation.
type LedgerService interface {
	// GetBalance returns the balance for (employee, leave type, year),
	// accruing elapsed whole months up to asOf first.
	GetBalance(ctx context.Context, employeeID, leaveType string, year int, asOf time.Time) (BalanceResponse, error)

	// Consume decrements the balance by days. Fails with
	// ErrNegativeBalance unless the applied policy allows going negative.
	Consume(ctx context.Context, employeeID, leaveType string, year int, days decimal.Decimal, asOf time.Time) (Balance, error)

	// Restore gives consumed days back (cancelled leave).
	Restore(ctx context.Context, employeeID, leaveType string, year int, days decimal.Decimal) (Balance, error)

	// PolicyFor resolves the active policy and effective monthly rate for
	// the employee and leave type on the given date.
	PolicyFor(ctx context.Context, employeeID, leaveType string, asOf time.Time) (AccrualPolicy, decimal.Decimal, error)
}
