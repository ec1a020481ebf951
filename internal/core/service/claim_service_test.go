package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

type stubClaimRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Claim
	nextID int
}

func newStubClaimRepo() *stubClaimRepo {
	return &stubClaimRepo{byID: make(map[string]*domain.Claim)}
}

func (r *stubClaimRepo) Insert(_ context.Context, c *domain.Claim) (*domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.nextID++
	clone.ID = fmt.Sprintf("claim-%03d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubClaimRepo) FindByID(_ context.Context, id string) (*domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrClaimNotFound
}

func (r *stubClaimRepo) ListBySubmitter(_ context.Context, memberID string) ([]*domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Claim
	for _, c := range r.byID {
		if c.SubmittedBy == memberID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubClaimRepo) ListAll(_ context.Context) ([]*domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Claim
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubClaimRepo) UpdateStatus(_ context.Context, id string, status domain.ClaimStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrClaimNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func claimFixture() (*ClaimService, *stubClaimRepo, *recorderDispatch) {
	repo := newStubClaimRepo()
	dispatch := &recorderDispatch{}
	return NewClaimService(repo, dispatch, zerolog.Nop()), repo, dispatch
}

func TestClaimService_Submit(t *testing.T) {
	svc, _, _ := claimFixture()

	claim, err := svc.Submit(context.Background(), ports.SubmitClaimInput{
		SubmittedBy: "singer-1",
		Title:       "Broken chair",
		Description: "Row three, seat five.",
		Severity:    "low",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if claim.Status != domain.ClaimPending {
		t.Errorf("new claims must start pending, got %s", claim.Status)
	}
	if !strings.HasPrefix(claim.Reference, "CLM-") || len(claim.Reference) != 12 {
		t.Errorf("unexpected reference format: %q", claim.Reference)
	}
}

func TestClaimService_Submit_Validation(t *testing.T) {
	svc, _, _ := claimFixture()

	if _, err := svc.Submit(context.Background(), ports.SubmitClaimInput{
		SubmittedBy: "singer-1", Title: "x", Description: "y", Severity: "catastrophic",
	}); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
	if _, err := svc.Submit(context.Background(), ports.SubmitClaimInput{
		SubmittedBy: "singer-1", Severity: "low",
	}); err == nil {
		t.Fatalf("expected error for missing title/description")
	}
}

func TestClaimService_UpdateStatus_NotifiesSubmitter(t *testing.T) {
	svc, _, dispatch := claimFixture()
	claim, _ := svc.Submit(context.Background(), ports.SubmitClaimInput{
		SubmittedBy: "singer-1", Title: "t", Description: "d", Severity: "high",
	})

	updated, err := svc.UpdateStatus(context.Background(), claim.ID, "in_review", "disc-1")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.ClaimInReview {
		t.Fatalf("status = %s, want in_review", updated.Status)
	}

	if dispatch.callCount() != 1 {
		t.Fatalf("expected one notification dispatch, got %d", dispatch.callCount())
	}
	call := dispatch.calls[0]
	if len(call.recipients) != 1 || call.recipients[0] != "singer-1" {
		t.Fatalf("notification must target the submitter, got %v", call.recipients)
	}
	if !strings.Contains(call.message, claim.Reference) {
		t.Errorf("notification should reference the claim, got %q", call.message)
	}
}

func TestClaimService_UpdateStatus_InvalidTransition(t *testing.T) {
	svc, _, _ := claimFixture()
	claim, _ := svc.Submit(context.Background(), ports.SubmitClaimInput{
		SubmittedBy: "singer-1", Title: "t", Description: "d", Severity: "medium",
	})

	// pending -> resolved skips review.
	if _, err := svc.UpdateStatus(context.Background(), claim.ID, "resolved", "disc-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// Unknown target status.
	if _, err := svc.UpdateStatus(context.Background(), claim.ID, "escalated", "disc-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), "no-such-claim", "in_review", "disc-1"); !errors.Is(err, domain.ErrClaimNotFound) {
		t.Fatalf("expected ErrClaimNotFound, got %v", err)
	}
}

func TestClaimService_AnonymousRedactionForReviewers(t *testing.T) {
	svc, _, _ := claimFixture()
	_, _ = svc.Submit(context.Background(), ports.SubmitClaimInput{
		SubmittedBy: "singer-1", Title: "anon", Description: "d", Severity: "high", IsAnonymous: true,
	})
	_, _ = svc.Submit(context.Background(), ports.SubmitClaimInput{
		SubmittedBy: "singer-2", Title: "open", Description: "d", Severity: "low",
	})

	claims, err := svc.ListForReview(context.Background())
	if err != nil {
		t.Fatalf("ListForReview: %v", err)
	}
	for _, c := range claims {
		if c.IsAnonymous && c.SubmittedBy != "" {
			t.Errorf("anonymous claim %s leaked its submitter", c.ID)
		}
		if !c.IsAnonymous && c.SubmittedBy == "" {
			t.Errorf("non-anonymous claim %s lost its submitter", c.ID)
		}
	}

	// The submitter still sees their own anonymous claim.
	own, err := svc.ListOwn(context.Background(), "singer-1")
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if len(own) != 1 || own[0].Title != "anon" {
		t.Fatalf("submitter's own list wrong: %+v", own)
	}
}

func TestClaimService_AnonymousSubmitterStillNotified(t *testing.T) {
	svc, _, dispatch := claimFixture()
	claim, _ := svc.Submit(context.Background(), ports.SubmitClaimInput{
		SubmittedBy: "singer-1", Title: "anon", Description: "d", Severity: "high", IsAnonymous: true,
	})

	if _, err := svc.UpdateStatus(context.Background(), claim.ID, "in_review", "disc-1"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if dispatch.callCount() != 1 || dispatch.calls[0].recipients[0] != "singer-1" {
		t.Fatalf("anonymous submitter must still receive status notifications")
	}
}
