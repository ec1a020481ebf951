package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

// AuthService implements registration, login and identity resolution.
type AuthService struct {
	repo   ports.MemberRepository
	tokens ports.TokenService
	otp    ports.OTPStore
	sms    ports.SMSSender
	log    zerolog.Logger
}

func NewAuthService(
	repo ports.MemberRepository,
	tokens ports.TokenService,
	otp ports.OTPStore,
	sms ports.SMSSender,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, otp: otp, sms: sms, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Member, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := in.Role
	if role == "" {
		role = string(domain.RoleSinger)
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := &domain.Member{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         parsed,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("member_id", created.ID).Str("role", string(created.Role)).Msg("member registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Member, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	member, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if !member.IsActive {
		return "", nil, domain.ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(member.ID, member.Role)
	if err != nil {
		return "", nil, err
	}
	return token, member, nil
}

// RequestOTP generates a one-time code for the phone number and hands it to
// the SMS collaborator. Delivery failures are logged but not surfaced, so the
// endpoint cannot be used to probe which phone numbers are registered.
func (s *AuthService) RequestOTP(ctx context.Context, phone string) error {
	if phone == "" {
		return domain.ErrInvalidCredentials
	}

	member, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		s.log.Debug().Str("phone", phone).Msg("otp requested for unknown phone")
		return nil
	}
	if !member.IsActive {
		return nil
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.otp.Save(ctx, phone, code); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.sms.Send(ctx, phone, "Your choir login code is "+code); err != nil {
		s.log.Warn().Err(err).Str("member_id", member.ID).Msg("otp delivery failed")
	}
	return nil
}

// LoginPhone consumes a previously requested code and issues a 24h token.
func (s *AuthService) LoginPhone(ctx context.Context, phone, code string) (string, *domain.Member, error) {
	if phone == "" || code == "" {
		return "", nil, domain.ErrInvalidOTP
	}

	stored, err := s.otp.Consume(ctx, phone)
	if err != nil {
		return "", nil, err
	}
	if stored != code {
		return "", nil, domain.ErrInvalidOTP
	}

	member, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return "", nil, err
	}
	if !member.IsActive {
		return "", nil, domain.ErrAccountInactive
	}

	token, err := s.tokens.IssuePhone(member.ID, member.Role)
	if err != nil {
		return "", nil, err
	}
	return token, member, nil
}

// Resolve loads the member behind a verified token subject. A deactivated
// account fails with ErrAccountInactive even when the token itself is valid.
func (s *AuthService) Resolve(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !member.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return member, nil
}

// generateOTPCode returns a 6-digit numeric code.
func generateOTPCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}
