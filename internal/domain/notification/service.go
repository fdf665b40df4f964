package notification

import "context"

type EmitRequest struct {
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}

// Service is the notification sink. Emit enqueues and returns
// immediately; delivery failures are logged by the implementation and
// never surfaced to emitters.
type Service interface {
	Emit(ctx context.Context, req EmitRequest)
	List(ctx context.Context, recipientID string, unreadOnly bool) ([]*Notification, error)
	MarkAsRead(ctx context.Context, recipientID string, ids []string) error

	// Subscribe streams notifications persisted for the recipient while
	// the subscription is open. Callers must invoke the cleanup func.
	Subscribe(ctx context.Context, recipientID string) (<-chan *Notification, func())

	Close()
}
