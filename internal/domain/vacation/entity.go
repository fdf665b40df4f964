package vacation

import (
	"time"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
)

// Terminal reports whether the status admits no further transition.
func (s RequestStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepApproved StepStatus = "approved"
	StepRejected StepStatus = "rejected"
)

type ApprovalAction string

const (
	ActionApprove  ApprovalAction = "approve"
	ActionReject   ApprovalAction = "reject"
	ActionDelegate ApprovalAction = "delegate"
)

// ApprovalStep belongs to exactly one request; order within the chain is
// significant. Delegation leaves the step pending under a new actor.
type ApprovalStep struct {
	ApproverID    string     `json:"approver_id"`
	Status        StepStatus `json:"status"`
	DelegatedToID *string    `json:"delegated_to_id,omitempty"`
	ActedAt       *time.Time `json:"acted_at,omitempty"`
}

// CanActBy reports whether actorID may act on this step: the assigned
// approver, or the current delegate.
func (s ApprovalStep) CanActBy(actorID string) bool {
	if s.ApproverID == actorID {
		return true
	}
	return s.DelegatedToID != nil && *s.DelegatedToID == actorID
}

// AuditEntry records one workflow action. Entries are append-only; nothing
// edits or removes them.
type AuditEntry struct {
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// VacationRequest carries its approval chain and audit log as ordered
// value collections; the current step is an index, not a pointer.
// Version is bumped on every write and checked on update, guarding
// concurrent approval actions on the same request.
type VacationRequest struct {
	ID         string
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	Status     RequestStatus

	// AppliedPolicyID pins the accrual policy the balance consumption ran
	// under, when one applied.
	AppliedPolicyID *string

	// PauseLoans asks approval to pause the employee's active loans for
	// the duration of the leave.
	PauseLoans bool

	ApprovalChain []ApprovalStep
	AuditLog      []AuditEntry

	Version int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// Days is the inclusive day count of the request.
func (r VacationRequest) Days() int {
	return dateutil.InclusiveDays(r.StartDate, r.EndDate)
}

// CurrentStepIndex returns the index of the first pending step, or -1
// when the chain is exhausted.
func (r VacationRequest) CurrentStepIndex() int {
	for i, step := range r.ApprovalChain {
		if step.Status == StepPending {
			return i
		}
	}
	return -1
}

// ChainApproved reports whether the terminal step of the chain has been
// approved, which is the only way the request itself reaches approved.
func (r VacationRequest) ChainApproved() bool {
	if len(r.ApprovalChain) == 0 {
		return false
	}
	return r.ApprovalChain[len(r.ApprovalChain)-1].Status == StepApproved
}

// Appended returns a copy of the audit log with one more entry.
func (r VacationRequest) Appended(action, actorID, notes string, at time.Time) []AuditEntry {
	log := make([]AuditEntry, len(r.AuditLog), len(r.AuditLog)+1)
	copy(log, r.AuditLog)
	return append(log, AuditEntry{Action: action, ActorID: actorID, Notes: notes, Timestamp: at})
}
