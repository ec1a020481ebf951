package ports

import (
	"context"

	"github.com/choralis/choir-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create a member account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// AuthService covers registration, login and identity resolution.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Member, error)
	Login(ctx context.Context, email, password string) (string, *domain.Member, error)
	// RequestOTP generates and stores a one-time code for the member with the
	// given phone number, handing it to the SMS collaborator for delivery.
	RequestOTP(ctx context.Context, phone string) error
	// LoginPhone consumes a previously requested code and issues a
	// long-lifetime token.
	LoginPhone(ctx context.Context, phone, code string) (string, *domain.Member, error)
	// Resolve loads the member and rejects deactivated accounts with
	// domain.ErrAccountInactive.
	Resolve(ctx context.Context, memberID string) (*domain.Member, error)
}

// MemberAdminService covers the administrative member surface.
type MemberAdminService interface {
	ListMembers(ctx context.Context) ([]*domain.Member, error)
	SetRole(ctx context.Context, memberID string, role string) error
	SetActive(ctx context.Context, memberID string, active bool) error
}

// SMSSender is the external telephony collaborator. Implementations deliver
// the code out of band; the core never depends on delivery succeeding.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// OTPStore holds short-lived login codes keyed by phone number.
type OTPStore interface {
	Save(ctx context.Context, phone, code string) error
	// Consume returns the stored code and deletes it, or
	// domain.ErrInvalidOTP when absent or expired.
	Consume(ctx context.Context, phone string) (string, error)
}
