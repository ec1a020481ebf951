package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Shared stubs for the service package tests.
// ---------------------------------------------------------------------------

type stubMemberRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Member
	nextID  int
	listErr error
}

func newStubMemberRepo() *stubMemberRepo {
	return &stubMemberRepo{byID: make(map[string]*domain.Member)}
}

func cloneMember(m *domain.Member) *domain.Member {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

func (r *stubMemberRepo) add(m *domain.Member) *domain.Member {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		r.nextID++
		m.ID = "member-" + string(rune('a'+r.nextID-1))
	}
	r.byID[m.ID] = cloneMember(m)
	return cloneMember(m)
}

func (r *stubMemberRepo) Create(_ context.Context, m *domain.Member) (*domain.Member, error) {
	r.mu.Lock()
	for _, existing := range r.byID {
		if existing.Email == m.Email {
			r.mu.Unlock()
			return nil, domain.ErrMemberExists
		}
	}
	r.mu.Unlock()
	return r.add(cloneMember(m)), nil
}

func (r *stubMemberRepo) FindByID(_ context.Context, id string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.byID[id]; ok {
		return cloneMember(m), nil
	}
	return nil, domain.ErrMemberNotFound
}

func (r *stubMemberRepo) FindByEmail(_ context.Context, email string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.byID {
		if m.Email == email {
			return cloneMember(m), nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (r *stubMemberRepo) FindByPhone(_ context.Context, phone string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.byID {
		if m.Phone == phone {
			return cloneMember(m), nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (r *stubMemberRepo) FindByRole(_ context.Context, role domain.Role, activeOnly bool) ([]*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Member
	for _, m := range r.byID {
		if m.Role != role {
			continue
		}
		if activeOnly && !m.IsActive {
			continue
		}
		out = append(out, cloneMember(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubMemberRepo) List(_ context.Context) ([]*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Member
	for _, m := range r.byID {
		out = append(out, cloneMember(m))
	}
	return out, nil
}

func (r *stubMemberRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return domain.ErrMemberNotFound
	}
	m.Role = role
	return nil
}

func (r *stubMemberRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return domain.ErrMemberNotFound
	}
	m.IsActive = active
	return nil
}

type stubAttendanceRepo struct {
	mu      sync.Mutex
	records []*domain.AttendanceRecord
	nextID  int

	insertErr error
	queryErr  error
	countErr  error
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{}
}

func (r *stubAttendanceRepo) matches(rec *domain.AttendanceRecord, key ports.AttendanceKey) bool {
	return rec.MemberID == key.MemberID &&
		rec.EventType == key.EventType &&
		rec.SessionKey == key.SessionKey
}

func (r *stubAttendanceRepo) Insert(_ context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	for _, existing := range r.records {
		if existing.MemberID == rec.MemberID && existing.EventID == rec.EventID {
			return nil, domain.ErrAttendanceExists
		}
	}
	clone := *rec
	r.nextID++
	clone.ID = fmt.Sprintf("att-%03d", r.nextID)
	r.records = append(r.records, &clone)
	out := clone
	return &out, nil
}

func (r *stubAttendanceRepo) QueryRecent(_ context.Context, key ports.AttendanceKey, limit int) ([]*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	var out []*domain.AttendanceRecord
	for _, rec := range r.records {
		if r.matches(rec, key) {
			clone := *rec
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.After(out[j].EventDate)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubAttendanceRepo) CountByStatus(_ context.Context, key ports.AttendanceKey, status domain.AttendanceStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, rec := range r.records {
		if r.matches(rec, key) && rec.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubAttendanceRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AttendanceRecord
	for _, rec := range r.records {
		if rec.EventID == eventID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubEventRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.ChoirEvent
	nextID int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{byID: make(map[string]*domain.ChoirEvent)}
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.ChoirEvent) (*domain.ChoirEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *e
	if clone.ID == "" {
		r.nextID++
		clone.ID = "event-" + string(rune('a'+r.nextID-1))
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.ChoirEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byID[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, domain.ErrEventNotFound
}

func (r *stubEventRepo) ListUpcoming(_ context.Context, from time.Time) ([]*domain.ChoirEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ChoirEvent
	for _, e := range r.byID {
		if !e.StartsAt.Before(from) {
			clone := *e
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

// recorderDispatch is a synchronous NotificationDispatcher that records every
// fan-out for assertions.
type recorderDispatch struct {
	mu    sync.Mutex
	calls []dispatchCall
}

type dispatchCall struct {
	recipients []string
	title      string
	message    string
	relatedID  string
}

func (d *recorderDispatch) Dispatch(recipients []string, title, message, relatedID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, dispatchCall{
		recipients: append([]string(nil), recipients...),
		title:      title,
		message:    message,
		relatedID:  relatedID,
	})
}

func (d *recorderDispatch) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

// memoryGuard is an in-memory EscalationGuard with set-if-absent semantics.
type memoryGuard struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func newMemoryGuard() *memoryGuard {
	return &memoryGuard{seen: make(map[string]bool)}
}

func (g *memoryGuard) Once(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return false, g.err
	}
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}
