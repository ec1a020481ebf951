package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/choralis/choir-api/internal/api/metrics"
	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

// NotificationService persists notification records and serves the pull
// surface (list own, mark read).
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

func (s *NotificationService) Create(ctx context.Context, recipientID, title, message, relatedID string) (*domain.Notification, error) {
	n := &domain.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		RelatedID:   relatedID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, n)
	if err != nil {
		metrics.NotificationsFailedTotal.Inc()
		return nil, fmt.Errorf("create notification: %w", err)
	}

	metrics.NotificationsCreatedTotal.Inc()
	return created, nil
}

func (s *NotificationService) ListForMember(ctx context.Context, memberID string, unreadOnly bool) ([]*domain.Notification, error) {
	return s.repo.ListByRecipient(ctx, memberID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, memberID string) error {
	return s.repo.MarkRead(ctx, id, memberID)
}
