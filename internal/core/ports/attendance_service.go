package ports

import (
	"context"

	"github.com/choralis/choir-api/internal/core/domain"
)

// MarkAttendanceInput is the DTO passed from the transport layer when a
// disciplinarian or secretary marks attendance.
type MarkAttendanceInput struct {
	MemberID   string
	EventID    string
	SessionKey string
	Status     string
	RecordedBy string
}

// AttendanceService records attendance and triggers escalation evaluation.
type AttendanceService interface {
	Mark(ctx context.Context, in MarkAttendanceInput) (*domain.AttendanceRecord, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.AttendanceRecord, error)
}

// EscalationService evaluates a member's recent history against the
// punishment thresholds after an attendance write.
type EscalationService interface {
	Evaluate(ctx context.Context, key AttendanceKey) error
}
