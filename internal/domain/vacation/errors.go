package vacation

import "errors"

var (
	ErrRequestNotFound       = errors.New("Vacation request not found")
	ErrOverlappingRequest    = errors.New("Vacation request overlaps an existing request")
	ErrAlreadyProcessed      = errors.New("Vacation request already processed")
	ErrNotAuthorizedApprover = errors.New("Actor is not the approver or delegate for this step")
	ErrNoPendingStep         = errors.New("Vacation request has no pending approval step")
	ErrVersionConflict       = errors.New("Vacation request was modified concurrently")
	ErrNotApproved           = errors.New("Vacation request is not approved")
)
