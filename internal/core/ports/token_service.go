package ports

import (
	"time"

	"github.com/choralis/choir-api/internal/core/domain"
)

// SessionClaims is the verified content of a session token. The subject
// establishes identity; the role claim is informational only. Authorization
// always re-resolves the member's stored role.
type SessionClaims struct {
	MemberID  string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	// Issue creates a standard-lifetime token for password logins.
	Issue(memberID string, role domain.Role) (string, error)
	// IssuePhone creates a long-lifetime token for OTP phone logins.
	IssuePhone(memberID string, role domain.Role) (string, error)
	// Verify checks signature, issuer, audience and expiry. Every failure
	// collapses to domain.ErrInvalidToken.
	Verify(token string) (*SessionClaims, error)
}
