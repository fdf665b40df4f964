package leave

import "errors"

var (
	ErrPolicyNotFound   = errors.New("Leave accrual policy not found")
	ErrBalanceNotFound  = errors.New("Leave balance not found")
	ErrNegativeBalance  = errors.New("Leave balance would go negative")
	ErrNoPolicyAssigned = errors.New("Employee has no leave policy for this leave type")
)
