package notification

import "time"

type NotificationType string

const (
	TypePayrollGenerated       NotificationType = "payroll_generated"
	TypeVacationDeduction      NotificationType = "vacation_deduction_applied"
	TypeLoanDeduction          NotificationType = "loan_deduction_applied"
	TypeLeaveApproved          NotificationType = "leave_approved"
	TypeLeaveRejected          NotificationType = "leave_rejected"
	TypeLeaveCancelled         NotificationType = "leave_cancelled"
	TypeLeaveCompleted         NotificationType = "leave_completed"
	TypeApprovalActionRequired NotificationType = "approval_action_required"
)

// Notification is a best-effort side channel. Losing one never fails the
// operation that emitted it.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
