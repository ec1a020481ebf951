package ports

import (
	"context"

	"github.com/choralis/choir-api/internal/core/domain"
)

// ClaimRepository defines persistence operations for claims.
type ClaimRepository interface {
	Insert(ctx context.Context, c *domain.Claim) (*domain.Claim, error)
	FindByID(ctx context.Context, id string) (*domain.Claim, error)
	// ListBySubmitter returns claims submitted by the member, newest first.
	ListBySubmitter(ctx context.Context, memberID string) ([]*domain.Claim, error)
	// ListAll returns every claim, newest first.
	ListAll(ctx context.Context) ([]*domain.Claim, error)
	UpdateStatus(ctx context.Context, id string, status domain.ClaimStatus) error
}
