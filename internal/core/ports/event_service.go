package ports

import (
	"context"
	"time"

	"github.com/choralis/choir-api/internal/core/domain"
)

// CreateEventInput carries the fields for scheduling a choir event.
type CreateEventInput struct {
	Title     string
	Type      string
	Location  string
	StartsAt  time.Time
	CreatedBy string
}

// EventService schedules choir events and broadcasts their creation.
type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*domain.ChoirEvent, error)
	Get(ctx context.Context, id string) (*domain.ChoirEvent, error)
	ListUpcoming(ctx context.Context) ([]*domain.ChoirEvent, error)
}
