package cron

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/notification"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/repository/memory"
)

type recordingNotifier struct {
	mu      sync.Mutex
	emitted []notification.EmitRequest
}

func (s *recordingNotifier) Emit(_ context.Context, req notification.EmitRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted = append(s.emitted, req)
}

func (s *recordingNotifier) List(context.Context, string, bool) ([]*notification.Notification, error) {
	return nil, nil
}
func (s *recordingNotifier) MarkAsRead(context.Context, string, []string) error { return nil }
func (s *recordingNotifier) Subscribe(context.Context, string) (<-chan *notification.Notification, func()) {
	ch := make(chan *notification.Notification)
	close(ch)
	return ch, func() {}
}
func (s *recordingNotifier) Close() {}

func TestApprovalReminderNudgesCurrentApprover(t *testing.T) {
	requests := memory.NewVacationRepository()
	notifier := &recordingNotifier{}

	pending, err := requests.Create(context.Background(), vacation.VacationRequest{
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  dateutil.NewDate(2024, time.June, 10),
		EndDate:    dateutil.NewDate(2024, time.June, 14),
		Status:     vacation.StatusPending,
		ApprovalChain: []vacation.ApprovalStep{
			{ApproverID: "mgr-1", Status: vacation.StepPending},
		},
	})
	require.NoError(t, err)

	deputy := "deputy-1"
	_, err = requests.Create(context.Background(), vacation.VacationRequest{
		EmployeeID: "emp-2",
		LeaveType:  "annual",
		StartDate:  dateutil.NewDate(2024, time.June, 10),
		EndDate:    dateutil.NewDate(2024, time.June, 14),
		Status:     vacation.StatusPending,
		ApprovalChain: []vacation.ApprovalStep{
			{ApproverID: "mgr-2", Status: vacation.StepPending, DelegatedToID: &deputy},
		},
	})
	require.NoError(t, err)

	// Approved requests never produce reminders.
	_, err = requests.Create(context.Background(), vacation.VacationRequest{
		EmployeeID: "emp-3",
		LeaveType:  "annual",
		StartDate:  dateutil.NewDate(2024, time.June, 10),
		EndDate:    dateutil.NewDate(2024, time.June, 14),
		Status:     vacation.StatusApproved,
	})
	require.NoError(t, err)

	scheduler := NewScheduler()
	RegisterApprovalReminderJob(scheduler, time.Hour, 0, requests, notifier)
	scheduler.RunOnce(context.Background())

	require.Len(t, notifier.emitted, 2)
	byRecipient := make(map[string]notification.EmitRequest, 2)
	for _, e := range notifier.emitted {
		assert.Equal(t, notification.TypeApprovalActionRequired, e.Type)
		byRecipient[e.RecipientID] = e
	}
	require.Contains(t, byRecipient, "mgr-1")
	require.Contains(t, byRecipient, deputy, "delegated steps remind the deputy")
	assert.Equal(t, pending.ID, byRecipient["mgr-1"].Data["request_id"])
}
