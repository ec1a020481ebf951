package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/choralis/choir-api/internal/api/metrics"
	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

const lockStripes = 64

// EscalationGuard records that an escalation has been emitted so concurrent
// or replayed evaluations of the same window cannot double-notify.
type EscalationGuard interface {
	// Once returns true the first time a key is seen.
	Once(ctx context.Context, key string) (bool, error)
}

// EscalationEngine evaluates a member's attendance history against the fixed
// thresholds after every attendance write. Evaluation for one
// (member, eventType, sessionKey) key is serialized through a striped lock
// table so two concurrent writes for the same member cannot both read a
// 3-absence window and both escalate.
type EscalationEngine struct {
	attendance ports.AttendanceRepository
	members    ports.MemberRepository
	guard      EscalationGuard
	dispatch   ports.NotificationDispatcher
	log        zerolog.Logger

	locks [lockStripes]sync.Mutex
}

func NewEscalationEngine(
	attendance ports.AttendanceRepository,
	members ports.MemberRepository,
	guard EscalationGuard,
	dispatch ports.NotificationDispatcher,
	log zerolog.Logger,
) *EscalationEngine {
	return &EscalationEngine{
		attendance: attendance,
		members:    members,
		guard:      guard,
		dispatch:   dispatch,
		log:        log,
	}
}

// Evaluate runs the absence-window check and the lateness-count check for the
// key. The two checks are independent and both run on every call.
func (e *EscalationEngine) Evaluate(ctx context.Context, key ports.AttendanceKey) error {
	start := time.Now()
	defer func() {
		metrics.EscalationEvaluationDuration.Observe(time.Since(start).Seconds())
	}()

	lock := e.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	if err := e.checkAbsences(ctx, key); err != nil {
		return err
	}
	return e.checkLateness(ctx, key)
}

// checkAbsences escalates at the moment an absence streak reaches exactly
// PunishmentThreshold records. Fewer records than the threshold, or any
// non-absent record inside the window, disqualifies the window. A streak
// already longer than the threshold escalated when it crossed it, so it does
// not re-trigger on every further absence.
func (e *EscalationEngine) checkAbsences(ctx context.Context, key ports.AttendanceKey) error {
	// One extra record tells streaks of exactly the threshold apart from
	// longer ones.
	recent, err := e.attendance.QueryRecent(ctx, key, domain.PunishmentThreshold+1)
	if err != nil {
		return fmt.Errorf("escalation: query recent: %w", err)
	}
	if len(recent) < domain.PunishmentThreshold {
		return nil
	}
	for _, rec := range recent[:domain.PunishmentThreshold] {
		if rec.Status != domain.AttendanceAbsent {
			return nil
		}
	}
	if len(recent) > domain.PunishmentThreshold && recent[domain.PunishmentThreshold].Status == domain.AttendanceAbsent {
		return nil
	}

	// Guard key includes the window head so a concurrent or replayed
	// evaluation of the same window never escalates twice.
	guardKey := fmt.Sprintf("escalation:absence:%s:%s:%s:%s",
		key.MemberID, key.EventType, key.SessionKey, recent[0].ID)
	if !e.firstTime(ctx, guardKey) {
		return nil
	}

	title := "Attendance escalation"
	msg := fmt.Sprintf("Member %s has been absent for the last %d %s attendances.",
		key.MemberID, domain.PunishmentThreshold, key.EventType)
	e.notifyDisciplinarians(ctx, title, msg, key.MemberID)

	metrics.EscalationsTotal.WithLabelValues("absence").Inc()
	e.log.Info().
		Str("member_id", key.MemberID).
		Str("event_type", string(key.EventType)).
		Int("count", domain.PunishmentThreshold).
		Msg("absence escalation emitted")
	return nil
}

// checkLateness counts all-time late marks for the key. At or above the
// punishment threshold the disciplinarians are notified; below it but at or
// above the warning threshold the singer gets a self-directed warning.
func (e *EscalationEngine) checkLateness(ctx context.Context, key ports.AttendanceKey) error {
	count, err := e.attendance.CountByStatus(ctx, key, domain.AttendanceLate)
	if err != nil {
		return fmt.Errorf("escalation: count late: %w", err)
	}

	switch {
	case count >= domain.LatePunishmentThreshold:
		guardKey := fmt.Sprintf("escalation:late:%s:%s:%s:%d",
			key.MemberID, key.EventType, key.SessionKey, count)
		if !e.firstTime(ctx, guardKey) {
			return nil
		}
		msg := fmt.Sprintf("Member %s has been late %d times for %s attendances.",
			key.MemberID, count, key.EventType)
		e.notifyDisciplinarians(ctx, "Lateness escalation", msg, key.MemberID)
		metrics.EscalationsTotal.WithLabelValues("late").Inc()
		e.log.Info().
			Str("member_id", key.MemberID).
			Str("event_type", string(key.EventType)).
			Int64("count", count).
			Msg("lateness escalation emitted")

	case count >= domain.LateWarningThreshold:
		guardKey := fmt.Sprintf("warning:late:%s:%s:%s:%d",
			key.MemberID, key.EventType, key.SessionKey, count)
		if !e.firstTime(ctx, guardKey) {
			return nil
		}
		msg := fmt.Sprintf("You have been late %d times for %s attendances. One more will be reported to the disciplinarians.",
			count, key.EventType)
		e.dispatch.Dispatch([]string{key.MemberID}, "Lateness warning", msg, "")
		metrics.EscalationsTotal.WithLabelValues("warning").Inc()
	}
	return nil
}

func (e *EscalationEngine) notifyDisciplinarians(ctx context.Context, title, message, relatedID string) {
	disciplinarians, err := e.members.FindByRole(ctx, domain.RoleDisciplinarian, true)
	if err != nil {
		e.log.Error().Err(err).Msg("escalation: failed to resolve disciplinarians")
		return
	}
	if len(disciplinarians) == 0 {
		e.log.Warn().Msg("escalation emitted with no active disciplinarians")
		return
	}

	recipients := make([]string, 0, len(disciplinarians))
	for _, d := range disciplinarians {
		recipients = append(recipients, d.ID)
	}
	e.dispatch.Dispatch(recipients, title, message, relatedID)
}

// firstTime consults the guard. A guard failure degrades to notifying anyway:
// a rare duplicate notification beats a silently swallowed escalation.
func (e *EscalationEngine) firstTime(ctx context.Context, key string) bool {
	first, err := e.guard.Once(ctx, key)
	if err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("escalation guard unavailable, notifying anyway")
		return true
	}
	return first
}

func (e *EscalationEngine) lockFor(key ports.AttendanceKey) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key.MemberID))
	_, _ = h.Write([]byte(key.EventType))
	_, _ = h.Write([]byte(key.SessionKey))
	return &e.locks[h.Sum32()%lockStripes]
}
