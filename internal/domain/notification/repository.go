package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, ns []*Notification) error
	GetByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]*Notification, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID string) error
}
