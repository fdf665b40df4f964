package response

import (
	"errors"
	"net/http"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/coverage"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/employee"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/leave"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/loan"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/payroll"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Conflicts
	case errors.Is(err, payroll.ErrPeriodOverlap):
		Conflict(w, err.Error())
	case errors.Is(err, vacation.ErrOverlappingRequest):
		Conflict(w, err.Error())
	case errors.Is(err, vacation.ErrVersionConflict):
		Conflict(w, "Request was modified concurrently, retry with fresh state")
	case errors.Is(err, vacation.ErrAlreadyProcessed):
		Conflict(w, "Request already reached a terminal state")
	case errors.Is(err, coverage.ErrAssignmentConflict):
		Conflict(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, vacation.ErrRequestNotFound):
		NotFound(w, "Vacation request not found")
	case errors.Is(err, loan.ErrLoanNotFound):
		NotFound(w, "Loan not found")
	case errors.Is(err, leave.ErrPolicyNotFound):
		NotFound(w, "Leave accrual policy not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Bad requests
	case errors.Is(err, payroll.ErrNoActiveEmployee):
		BadRequest(w, "No active employees for the requested period", nil)
	case errors.Is(err, vacation.ErrNoPendingStep):
		BadRequest(w, "Request has no pending approval step", nil)
	case errors.Is(err, vacation.ErrNotApproved):
		BadRequest(w, "Request is not in an approved state", nil)
	case errors.Is(err, leave.ErrNoPolicyAssigned):
		BadRequest(w, "Employee has no leave policy for this leave type", nil)
	case errors.Is(err, leave.ErrNegativeBalance):
		BadRequest(w, "Leave balance would go negative", nil)

	// Authorization
	case errors.Is(err, vacation.ErrNotAuthorizedApprover):
		Forbidden(w, "You are not the approver or delegate for the current step")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
