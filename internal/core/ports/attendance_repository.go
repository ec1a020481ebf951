package ports

import (
	"context"

	"github.com/choralis/choir-api/internal/core/domain"
)

// AttendanceKey identifies the history stream escalation is evaluated over.
// SessionKey is optional; when empty the key covers all sessions of the
// event type.
type AttendanceKey struct {
	MemberID   string
	EventType  domain.EventType
	SessionKey string
}

// AttendanceRepository defines persistence operations for attendance records.
type AttendanceRepository interface {
	// Insert persists an immutable record. A second record for the same
	// (member, event) pair returns domain.ErrAttendanceExists.
	Insert(ctx context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error)
	// QueryRecent returns up to limit records for the key, ordered by event
	// date descending, ties broken by record id descending.
	QueryRecent(ctx context.Context, key AttendanceKey, limit int) ([]*domain.AttendanceRecord, error)
	// CountByStatus counts all records for the key with the given status.
	CountByStatus(ctx context.Context, key AttendanceKey, status domain.AttendanceStatus) (int64, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.AttendanceRecord, error)
}
