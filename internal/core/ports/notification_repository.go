package ports

import (
	"context"

	"github.com/choralis/choir-api/internal/core/domain"
)

// NotificationRepository handles notification persistence.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	// ListByRecipient returns the recipient's notifications, newest first.
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]*domain.Notification, error)
	// MarkRead flips is_read for the notification, scoped to the recipient so
	// a member cannot mark another member's notification.
	MarkRead(ctx context.Context, id, recipientID string) error
}
