package ports

import (
	"context"

	"github.com/choralis/choir-api/internal/core/domain"
)

// NotificationService persists and serves pull-based notifications.
type NotificationService interface {
	// Create persists a single notification record.
	Create(ctx context.Context, recipientID, title, message, relatedID string) (*domain.Notification, error)
	ListForMember(ctx context.Context, memberID string, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, memberID string) error
}

// NotificationJob is one unit of asynchronous fan-out work.
type NotificationJob struct {
	RecipientID string
	Title       string
	Message     string
	RelatedID   string
}

// NotificationDispatcher fans a message out to a set of recipients.
// Dispatch is best-effort and never blocks or fails the caller; persistence
// errors are logged by the implementation.
type NotificationDispatcher interface {
	Dispatch(recipients []string, title, message, relatedID string)
}
