package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/employee"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/notification"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/email"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/sse"
)

// Config tunes the async delivery pipeline.
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo         notification.Repository
	employeeRepo employee.EmployeeRepository
	mailer       email.Sender
	hub          *sse.Hub
	config       Config
	logger       *slog.Logger

	queue  chan notification.EmitRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService starts background workers that batch-insert queued
// notifications and send best-effort email copies.
func NewNotificationService(
	repo notification.Repository,
	employeeRepo employee.EmployeeRepository,
	mailer email.Sender,
	hub *sse.Hub,
	cfg Config,
	logger *slog.Logger,
) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:         repo,
		employeeRepo: employeeRepo,
		mailer:       mailer,
		hub:          hub,
		config:       cfg,
		logger:       logger,
		queue:        make(chan notification.EmitRequest, cfg.QueueSize),
		stopCh:       make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	logger.Info("notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.EmitRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = &notification.Notification{
				RecipientID: req.RecipientID,
				Type:        req.Type,
				Title:       req.Title,
				Message:     req.Message,
				Data:        req.Data,
				CreatedAt:   time.Now(),
			}
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			s.logger.Error("notification batch insert failed", "worker", id, "count", len(notifications), "error", err)
		} else {
			for _, n := range notifications {
				s.hub.Publish(n.RecipientID, sse.Event{
					RecipientID: n.RecipientID,
					Name:        "notification",
					Data:        n,
				})
				s.sendEmail(ctx, n)
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			flush()
			return
		}
	}
}

// Emit enqueues without blocking the caller. A full queue drops the
// notification with a log line; losing one is acceptable, stalling payroll
// generation is not.
func (s *service) Emit(ctx context.Context, req notification.EmitRequest) {
	select {
	case s.queue <- req:
	default:
		s.logger.Warn("notification queue full, dropping",
			"recipient_id", req.RecipientID, "type", req.Type)
	}
}

func (s *service) List(ctx context.Context, recipientID string, unreadOnly bool) ([]*notification.Notification, error) {
	return s.repo.GetByRecipient(ctx, recipientID, unreadOnly)
}

func (s *service) MarkAsRead(ctx context.Context, recipientID string, ids []string) error {
	return s.repo.MarkAsRead(ctx, ids, recipientID)
}

func (s *service) Subscribe(ctx context.Context, recipientID string) (<-chan *notification.Notification, func()) {
	ch, cleanup := s.hub.Subscribe(recipientID)

	out := make(chan *notification.Notification, 10)
	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if n, ok := event.Data.(*notification.Notification); ok {
					out <- n
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

func (s *service) sendEmail(ctx context.Context, n *notification.Notification) {
	emp, err := s.employeeRepo.GetByID(ctx, n.RecipientID)
	if err != nil {
		// Approvers outside the employee directory simply get no email.
		return
	}
	if err := s.mailer.Send(emp.Email, n.Title, n.Message); err != nil {
		s.logger.Error("notification email failed", "recipient_id", n.RecipientID, "error", err)
	}
}

// Close drains the queue and stops the workers.
func (s *service) Close() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("notification service stopped")
}
