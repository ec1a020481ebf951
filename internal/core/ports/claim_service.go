package ports

import (
	"context"

	"github.com/choralis/choir-api/internal/core/domain"
)

// SubmitClaimInput carries a singer's claim submission.
type SubmitClaimInput struct {
	SubmittedBy   string
	Title         string
	Description   string
	Severity      string
	IsAnonymous   bool
	AttachmentRef string
}

// ClaimService covers claim submission and the review workflow.
type ClaimService interface {
	Submit(ctx context.Context, in SubmitClaimInput) (*domain.Claim, error)
	// UpdateStatus applies a review transition and notifies the submitter.
	UpdateStatus(ctx context.Context, claimID, status, reviewerID string) (*domain.Claim, error)
	// ListForReview returns all claims with anonymous submitters blanked.
	ListForReview(ctx context.Context) ([]*domain.Claim, error)
	ListOwn(ctx context.Context, memberID string) ([]*domain.Claim, error)
}
