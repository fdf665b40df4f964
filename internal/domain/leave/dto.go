package leave

import "github.com/shopspring/decimal"

type BalanceResponse struct {
	EmployeeID   string          `json:"employee_id"`
	LeaveType    string          `json:"leave_type"`
	Year         int             `json:"year"`
	BalanceDays  decimal.Decimal `json:"balance_days"`
	AccruedDays  decimal.Decimal `json:"accrued_days"`
	ConsumedDays decimal.Decimal `json:"consumed_days"`
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:   b.EmployeeID,
		LeaveType:    b.LeaveType,
		Year:         b.Year,
		BalanceDays:  b.BalanceDays,
		AccruedDays:  b.AccruedDays,
		ConsumedDays: b.ConsumedDays,
	}
}
