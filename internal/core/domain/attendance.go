package domain

import (
	"errors"
	"time"
)

// EventType distinguishes the two kinds of choir gatherings attendance is
// tracked for.
type EventType string

const (
	EventRehearsal EventType = "rehearsal"
	EventService   EventType = "service"
)

// AttendanceStatus is the outcome recorded for a member at one event.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Escalation thresholds. An all-absent window of PunishmentThreshold records
// escalates to the disciplinarians; lateness escalates at
// LatePunishmentThreshold and warns the singer at LateWarningThreshold.
const (
	PunishmentThreshold     = 4
	LatePunishmentThreshold = 4
	LateWarningThreshold    = 3
)

var ErrEventNotFound = errors.New("event not found")
var ErrAttendanceExists = errors.New("attendance already recorded")

// AttendanceRecord is one immutable attendance mark. EventDate is denormalised
// from the event so escalation windows can be ordered without a join.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	MemberID   string           `json:"member_id"`
	EventID    string           `json:"event_id"`
	EventType  EventType        `json:"event_type"`
	EventDate  time.Time        `json:"event_date"`
	SessionKey string           `json:"session_key,omitempty"`
	Status     AttendanceStatus `json:"status"`
	RecordedBy string           `json:"recorded_by"`
	CreatedAt  time.Time        `json:"created_at"`
}
