package loan

import "errors"

var (
	ErrLoanNotFound     = errors.New("Loan not found")
	ErrInvalidDeduction = errors.New("Loan deduction exceeds remaining amount")
)
