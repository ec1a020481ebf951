package ports

import (
	"context"

	"github.com/choralis/choir-api/internal/core/domain"
)

// MemberRepository defines the interface for member persistence.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (*domain.Member, error)
	FindByID(ctx context.Context, id string) (*domain.Member, error)
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Member, error)
	// FindByRole returns all members holding the role. When activeOnly is
	// true, deactivated accounts are excluded.
	FindByRole(ctx context.Context, role domain.Role, activeOnly bool) ([]*domain.Member, error)
	List(ctx context.Context) ([]*domain.Member, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	SetActive(ctx context.Context, id string, active bool) error
}
