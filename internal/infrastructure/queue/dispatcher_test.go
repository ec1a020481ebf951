package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/choralis/choir-api/internal/core/domain"
)

type recordingService struct {
	mu      sync.Mutex
	created []string
	done    chan struct{}
	want    int
}

func (s *recordingService) Create(ctx context.Context, recipientID, title, message, relatedID string) (*domain.Notification, error) {
	s.mu.Lock()
	s.created = append(s.created, recipientID)
	if len(s.created) == s.want {
		close(s.done)
	}
	s.mu.Unlock()
	return &domain.Notification{ID: "n1", RecipientID: recipientID}, nil
}

func (s *recordingService) ListForMember(ctx context.Context, memberID string, unreadOnly bool) ([]*domain.Notification, error) {
	return nil, nil
}

func (s *recordingService) MarkRead(ctx context.Context, id, memberID string) error {
	return nil
}

func TestDispatcher_FansOutToAllRecipients(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}), want: 3}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Dispatch([]string{"m1", "m2", "m3"}, "Rehearsal scheduled", "Friday 6pm", "ev1")

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for fan-out, got %d creates", len(svc.created))
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	seen := map[string]bool{}
	for _, id := range svc.created {
		seen[id] = true
	}
	for _, id := range []string{"m1", "m2", "m3"} {
		if !seen[id] {
			t.Fatalf("recipient %s never notified", id)
		}
	}
}

func TestDispatcher_SameRecipientSameWorker(t *testing.T) {
	d := NewDispatcher(8, &recordingService{done: make(chan struct{}), want: 0}, zerolog.Nop())

	first := d.shardIndex("member-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("member-42"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
}
