package vacation

import (
	"time"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/validator"
)

type SubmitVacationRequest struct {
	EmployeeID  string   `json:"employee_id"`
	LeaveType   string   `json:"leave_type"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Reason      *string  `json:"reason,omitempty"`
	PauseLoans  bool     `json:"pause_loans"`
	ApproverIDs []string `json:"approver_ids"`
}

func (r *SubmitVacationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(r.ApproverIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "approver_ids", Message: "at least one approver is required"})
	}
	for _, id := range r.ApproverIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{Field: "approver_ids", Message: "must not contain empty ids"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed date range. Call Validate first.
func (r *SubmitVacationRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type ApprovalActionRequest struct {
	Action       string  `json:"action"` // approve, reject, delegate
	DelegateToID *string `json:"delegate_to_id,omitempty"`
	Note         *string `json:"note,omitempty"`
}

func (r *ApprovalActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Action, []string{string(ActionApprove), string(ActionReject), string(ActionDelegate)}) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "must be 'approve', 'reject' or 'delegate'"})
	}
	if r.Action == string(ActionDelegate) && (r.DelegateToID == nil || validator.IsEmpty(*r.DelegateToID)) {
		errs = append(errs, validator.ValidationError{Field: "delegate_to_id", Message: "is required for delegation"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VacationRequestResponse struct {
	ID            string         `json:"id"`
	EmployeeID    string         `json:"employee_id"`
	EmployeeName  *string        `json:"employee_name,omitempty"`
	LeaveType     string         `json:"leave_type"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	Days          int            `json:"days"`
	Reason        *string        `json:"reason,omitempty"`
	Status        string         `json:"status"`
	PauseLoans    bool           `json:"pause_loans"`
	ApprovalChain []ApprovalStep `json:"approval_chain"`
	AuditLog      []AuditEntry   `json:"audit_log"`
	Version       int            `json:"version"`
}

func ToResponse(r VacationRequest) VacationRequestResponse {
	return VacationRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LeaveType:     r.LeaveType,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Days:          r.Days(),
		Reason:        r.Reason,
		Status:        string(r.Status),
		PauseLoans:    r.PauseLoans,
		ApprovalChain: r.ApprovalChain,
		AuditLog:      r.AuditLog,
		Version:       r.Version,
	}
}
