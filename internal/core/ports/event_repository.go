package ports

import (
	"context"
	"time"

	"github.com/choralis/choir-api/internal/core/domain"
)

// EventRepository defines persistence operations for choir events.
type EventRepository interface {
	Insert(ctx context.Context, e *domain.ChoirEvent) (*domain.ChoirEvent, error)
	FindByID(ctx context.Context, id string) (*domain.ChoirEvent, error)
	// ListUpcoming returns events starting at or after from, soonest first.
	ListUpcoming(ctx context.Context, from time.Time) ([]*domain.ChoirEvent, error)
}
