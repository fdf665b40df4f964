package notification

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/notification"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/fixtures"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/sse"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/repository/memory"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string // recipient addresses
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type deliveryFixture struct {
	svc    notification.Service
	repo   *memory.NotificationRepository
	mailer *recordingMailer
}

func newDeliveryFixture(t *testing.T) *deliveryFixture {
	t.Helper()
	f := &deliveryFixture{
		repo:   memory.NewNotificationRepository(),
		mailer: &recordingMailer{},
	}
	employees := memory.NewEmployeeRepository()
	employees.Put(fixtures.ActiveEmployee("emp-1", "dept-1", "amira", 3000))

	f.svc = NewNotificationService(f.repo, employees, f.mailer, sse.NewHub(), Config{
		FlushInterval: 10 * time.Millisecond,
		WorkerCount:   1,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(f.svc.Close)
	return f
}

func emitTo(f *deliveryFixture, recipientID string) {
	f.svc.Emit(context.Background(), notification.EmitRequest{
		RecipientID: recipientID,
		Type:        notification.TypePayrollGenerated,
		Title:       "Payroll generated",
		Message:     "The January run is ready.",
	})
}

func TestEmitPersistsAsynchronously(t *testing.T) {
	f := newDeliveryFixture(t)

	emitTo(f, "emp-1")
	emitTo(f, "emp-1")

	require.Eventually(t, func() bool {
		ns, err := f.svc.List(context.Background(), "emp-1", false)
		return err == nil && len(ns) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEmailCopyGoesToEmployeeRecipientsOnly(t *testing.T) {
	f := newDeliveryFixture(t)

	emitTo(f, "emp-1")
	emitTo(f, "external-approver")

	require.Eventually(t, func() bool {
		ns, err := f.svc.List(context.Background(), "external-approver", false)
		return err == nil && len(ns) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		sent := f.mailer.recipients()
		return len(sent) == 1 && sent[0] == "amira@example.com"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubscribeStreamsNewNotifications(t *testing.T) {
	f := newDeliveryFixture(t)

	ch, cleanup := f.svc.Subscribe(context.Background(), "emp-1")
	defer cleanup()

	emitTo(f, "emp-1")

	select {
	case n := <-ch:
		require.NotNil(t, n)
		assert.Equal(t, notification.TypePayrollGenerated, n.Type)
		assert.Equal(t, "emp-1", n.RecipientID)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification streamed")
	}
}

func TestMarkAsReadFiltersUnreadList(t *testing.T) {
	f := newDeliveryFixture(t)

	emitTo(f, "emp-1")
	emitTo(f, "emp-1")

	var ids []string
	require.Eventually(t, func() bool {
		ns, err := f.svc.List(context.Background(), "emp-1", true)
		if err != nil || len(ns) != 2 {
			return false
		}
		ids = []string{ns[0].ID}
		return true
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, f.svc.MarkAsRead(context.Background(), "emp-1", ids))

	unread, err := f.svc.List(context.Background(), "emp-1", true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	all, err := f.svc.List(context.Background(), "emp-1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
