package vacation

import "context"

type VacationService interface {
	Submit(ctx context.Context, req SubmitVacationRequest) (VacationRequestResponse, error)
	Get(ctx context.Context, requestID string) (VacationRequestResponse, error)

	// ActOnApproval applies approve/reject/delegate on the request's
	// current pending step as actorID.
	ActOnApproval(ctx context.Context, requestID, actorID string, req ApprovalActionRequest) (VacationRequestResponse, error)

	Cancel(ctx context.Context, requestID, actorID string, note *string) (VacationRequestResponse, error)

	// Complete marks an approved request finished after the employee's
	// return, restoring employee status and optionally resuming loans.
	Complete(ctx context.Context, requestID, actorID string, resumeLoans bool) (VacationRequestResponse, error)
}
