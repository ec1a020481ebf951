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

// AttendanceService records attendance marks and runs escalation evaluation
// synchronously after each write.
type AttendanceService struct {
	attendance ports.AttendanceRepository
	events     ports.EventRepository
	members    ports.MemberRepository
	escalation ports.EscalationService
	log        zerolog.Logger
}

func NewAttendanceService(
	attendance ports.AttendanceRepository,
	events ports.EventRepository,
	members ports.MemberRepository,
	escalation ports.EscalationService,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		events:     events,
		members:    members,
		escalation: escalation,
		log:        log,
	}
}

// Mark records one immutable attendance mark. The authorization gate has
// already run; escalation evaluation happens after the write and its
// notification side effects never fail the mark itself.
func (s *AttendanceService) Mark(ctx context.Context, in ports.MarkAttendanceInput) (*domain.AttendanceRecord, error) {
	status := domain.AttendanceStatus(in.Status)
	switch status {
	case domain.AttendancePresent, domain.AttendanceLate, domain.AttendanceAbsent:
	default:
		return nil, fmt.Errorf("mark attendance: unknown status %q", in.Status)
	}

	member, err := s.members.FindByID(ctx, in.MemberID)
	if err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}
	event, err := s.events.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	rec := &domain.AttendanceRecord{
		MemberID:   member.ID,
		EventID:    event.ID,
		EventType:  event.Type,
		EventDate:  event.StartsAt,
		SessionKey: in.SessionKey,
		Status:     status,
		RecordedBy: in.RecordedBy,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.attendance.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	metrics.AttendanceRecordsTotal.WithLabelValues(string(status), string(event.Type)).Inc()
	s.log.Info().
		Str("member_id", member.ID).
		Str("event_id", event.ID).
		Str("status", string(status)).
		Msg("attendance recorded")

	key := ports.AttendanceKey{
		MemberID:   member.ID,
		EventType:  event.Type,
		SessionKey: in.SessionKey,
	}
	if err := s.escalation.Evaluate(ctx, key); err != nil {
		// Escalation is a side effect of the write, not part of it.
		s.log.Error().Err(err).Str("member_id", member.ID).Msg("escalation evaluation failed")
	}

	return created, nil
}

func (s *AttendanceService) ListByEvent(ctx context.Context, eventID string) ([]*domain.AttendanceRecord, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.attendance.ListByEvent(ctx, eventID)
}
