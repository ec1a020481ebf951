package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

// MemberService implements the administrative member surface.
type MemberService struct {
	repo ports.MemberRepository
	log  zerolog.Logger
}

func NewMemberService(repo ports.MemberRepository, log zerolog.Logger) *MemberService {
	return &MemberService{repo: repo, log: log}
}

func (s *MemberService) ListMembers(ctx context.Context) ([]*domain.Member, error) {
	return s.repo.List(ctx)
}

// SetRole changes a member's role. Role changes do not invalidate existing
// tokens; the authorization gate re-resolves the stored role on every
// request, so the new role takes effect immediately.
func (s *MemberService) SetRole(ctx context.Context, memberID string, role string) error {
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateRole(ctx, memberID, parsed); err != nil {
		return err
	}
	s.log.Info().Str("member_id", memberID).Str("role", role).Msg("member role updated")
	return nil
}

func (s *MemberService) SetActive(ctx context.Context, memberID string, active bool) error {
	if err := s.repo.SetActive(ctx, memberID, active); err != nil {
		return err
	}
	s.log.Info().Str("member_id", memberID).Bool("active", active).Msg("member active flag updated")
	return nil
}
