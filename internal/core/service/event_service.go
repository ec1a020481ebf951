package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

// EventService schedules choir events and broadcasts their creation to all
// active singers.
type EventService struct {
	events   ports.EventRepository
	members  ports.MemberRepository
	dispatch ports.NotificationDispatcher
	log      zerolog.Logger
}

func NewEventService(
	events ports.EventRepository,
	members ports.MemberRepository,
	dispatch ports.NotificationDispatcher,
	log zerolog.Logger,
) *EventService {
	return &EventService{events: events, members: members, dispatch: dispatch, log: log}
}

func (s *EventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.ChoirEvent, error) {
	eventType := domain.EventType(in.Type)
	switch eventType {
	case domain.EventRehearsal, domain.EventService:
	default:
		return nil, fmt.Errorf("create event: unknown type %q", in.Type)
	}
	if in.Title == "" || in.StartsAt.IsZero() {
		return nil, fmt.Errorf("create event: missing required fields")
	}

	event := &domain.ChoirEvent{
		Title:     in.Title,
		Type:      eventType,
		Location:  in.Location,
		StartsAt:  in.StartsAt.UTC(),
		CreatedBy: in.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.events.Insert(ctx, event)
	if err != nil {
		return nil, err
	}

	s.broadcastToSingers(ctx, created)

	s.log.Info().
		Str("event_id", created.ID).
		Str("type", string(created.Type)).
		Time("starts_at", created.StartsAt).
		Msg("event created")
	return created, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.ChoirEvent, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) ListUpcoming(ctx context.Context) ([]*domain.ChoirEvent, error) {
	return s.events.ListUpcoming(ctx, time.Now().UTC())
}

// broadcastToSingers is best-effort: a failed singer lookup loses the
// broadcast but never the event creation.
func (s *EventService) broadcastToSingers(ctx context.Context, event *domain.ChoirEvent) {
	singers, err := s.members.FindByRole(ctx, domain.RoleSinger, true)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", event.ID).Msg("failed to resolve singers for broadcast")
		return
	}
	if len(singers) == 0 {
		return
	}

	recipients := make([]string, 0, len(singers))
	for _, m := range singers {
		recipients = append(recipients, m.ID)
	}
	s.dispatch.Dispatch(
		recipients,
		"New "+string(event.Type),
		fmt.Sprintf("%s on %s at %s.", event.Title, event.StartsAt.Format("Mon 2 Jan 15:04"), event.Location),
		event.ID,
	)
}
