package leave

import "context"

type PolicyRepository interface {
	GetByID(ctx context.Context, id string) (AccrualPolicy, error)
	GetByLeaveType(ctx context.Context, leaveType string) ([]AccrualPolicy, error)
	ListEmployeePolicies(ctx context.Context, employeeID string) ([]EmployeePolicy, error)
}

type BalanceRepository interface {
	// Get returns ErrBalanceNotFound when no row exists yet; callers treat
	// that as a zero opening balance.
	Get(ctx context.Context, employeeID, leaveType string, year int) (Balance, error)
	Upsert(ctx context.Context, balance Balance) (Balance, error)
}
