package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

// ClaimService implements claim submission and the disciplinarian review
// workflow.
type ClaimService struct {
	repo     ports.ClaimRepository
	dispatch ports.NotificationDispatcher
	log      zerolog.Logger
}

func NewClaimService(repo ports.ClaimRepository, dispatch ports.NotificationDispatcher, log zerolog.Logger) *ClaimService {
	return &ClaimService{repo: repo, dispatch: dispatch, log: log}
}

func (s *ClaimService) Submit(ctx context.Context, in ports.SubmitClaimInput) (*domain.Claim, error) {
	severity := domain.ClaimSeverity(in.Severity)
	switch severity {
	case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh:
	default:
		return nil, fmt.Errorf("submit claim: unknown severity %q", in.Severity)
	}
	if in.Title == "" || in.Description == "" || in.SubmittedBy == "" {
		return nil, fmt.Errorf("submit claim: missing required fields")
	}

	now := time.Now().UTC()
	claim := &domain.Claim{
		Reference:     generateClaimReference(),
		SubmittedBy:   in.SubmittedBy,
		Title:         in.Title,
		Description:   in.Description,
		Severity:      severity,
		Status:        domain.ClaimPending,
		IsAnonymous:   in.IsAnonymous,
		AttachmentRef: in.AttachmentRef,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Insert(ctx, claim)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("claim_id", created.ID).
		Str("reference", created.Reference).
		Str("severity", string(created.Severity)).
		Bool("anonymous", created.IsAnonymous).
		Msg("claim submitted")
	return created, nil
}

// UpdateStatus applies a review transition. The submitter is notified on
// every successful transition; anonymity hides the submitter from reviewers,
// not from the system, so the notification still reaches them.
func (s *ClaimService) UpdateStatus(ctx context.Context, claimID, status, reviewerID string) (*domain.Claim, error) {
	next := domain.ClaimStatus(status)
	switch next {
	case domain.ClaimInReview, domain.ClaimResolved, domain.ClaimRejected:
	default:
		return nil, fmt.Errorf("update claim: unknown status %q: %w", status, domain.ErrInvalidTransition)
	}

	claim, err := s.repo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !claim.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("update claim: %w (from %s to %s)", domain.ErrInvalidTransition, claim.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, claimID, next); err != nil {
		return nil, err
	}
	claim.Status = next
	claim.UpdatedAt = time.Now().UTC()

	s.dispatch.Dispatch(
		[]string{claim.SubmittedBy},
		"Claim "+string(next),
		fmt.Sprintf("Your claim %s is now %s.", claim.Reference, next),
		claim.ID,
	)

	s.log.Info().
		Str("claim_id", claim.ID).
		Str("status", string(next)).
		Str("reviewer_id", reviewerID).
		Msg("claim status updated")
	return claim, nil
}

// ListForReview returns every claim with anonymous submitters blanked for
// the reviewer's eyes.
func (s *ClaimService) ListForReview(ctx context.Context) ([]*domain.Claim, error) {
	claims, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Claim, 0, len(claims))
	for _, c := range claims {
		if c.IsAnonymous {
			redacted := *c
			redacted.SubmittedBy = ""
			out = append(out, &redacted)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *ClaimService) ListOwn(ctx context.Context, memberID string) ([]*domain.Claim, error) {
	return s.repo.ListBySubmitter(ctx, memberID)
}

// generateClaimReference returns a human-readable reference like CLM-1A2B3C4D.
func generateClaimReference() string {
	id := uuid.New().String()
	return "CLM-" + strings.ToUpper(id[:8])
}
