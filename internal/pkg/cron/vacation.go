package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/notification"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
)

// RegisterApprovalReminderJob nudges the current approver of every vacation
// request that has sat pending longer than staleAfter. Runs on the given
// interval; reminders are plain notifications, so duplicates across runs
// are tolerable.
func RegisterApprovalReminderJob(
	s *Scheduler,
	interval time.Duration,
	staleAfter time.Duration,
	requests vacation.VacationRequestRepository,
	notifier notification.Service,
) {
	s.AddJob("vacation-approval-reminder", interval, func(ctx context.Context) error {
		cutoff := time.Now().Add(-staleAfter)
		stale, err := requests.ListPendingOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}

		for _, req := range stale {
			idx := req.CurrentStepIndex()
			if idx < 0 {
				continue
			}
			step := req.ApprovalChain[idx]
			recipient := step.ApproverID
			if step.DelegatedToID != nil {
				recipient = *step.DelegatedToID
			}

			notifier.Emit(ctx, notification.EmitRequest{
				RecipientID: recipient,
				Type:        notification.TypeApprovalActionRequired,
				Title:       "Vacation request still awaiting approval",
				Message: fmt.Sprintf("Request %s (%s to %s) has been pending since %s.",
					req.ID,
					req.StartDate.Format("2006-01-02"),
					req.EndDate.Format("2006-01-02"),
					req.CreatedAt.Format("2006-01-02"),
				),
				Data: map[string]interface{}{"request_id": req.ID},
			})
		}
		return nil
	})
}
