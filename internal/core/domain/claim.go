package domain

import (
	"errors"
	"time"
)

// ClaimStatus represents the review state of a claim.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimInReview ClaimStatus = "in_review"
	ClaimResolved ClaimStatus = "resolved"
	ClaimRejected ClaimStatus = "rejected"
)

// ClaimSeverity is the reporter's assessment of the claim.
type ClaimSeverity string

const (
	SeverityLow    ClaimSeverity = "low"
	SeverityMedium ClaimSeverity = "medium"
	SeverityHigh   ClaimSeverity = "high"
)

// validClaimTransitions defines the allowed review state machine.
var validClaimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimPending:  {ClaimInReview, ClaimRejected},
	ClaimInReview: {ClaimResolved, ClaimRejected},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrClaimNotFound = errors.New("claim not found")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	for _, allowed := range validClaimTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Claim is a complaint submitted by a singer and reviewed by a
// disciplinarian. SubmittedBy is always stored; anonymity only hides the
// submitter from reviewers.
type Claim struct {
	ID            string        `json:"id"`
	Reference     string        `json:"reference"`
	SubmittedBy   string        `json:"submitted_by,omitempty"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Severity      ClaimSeverity `json:"severity"`
	Status        ClaimStatus   `json:"status"`
	IsAnonymous   bool          `json:"is_anonymous"`
	AttachmentRef string        `json:"attachment_ref,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
