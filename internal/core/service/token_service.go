package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

// TokenConfig carries the signing secret and token lifetimes. It is injected
// at construction so tests can run with distinct secrets.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
	PhoneTTL time.Duration
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.TTL <= 0 {
		cfg.TTL = 2 * time.Hour
	}
	if cfg.PhoneTTL <= 0 {
		cfg.PhoneTTL = 24 * time.Hour
	}
	return &TokenService{cfg: cfg}
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue creates a standard-lifetime token for password logins.
func (s *TokenService) Issue(memberID string, role domain.Role) (string, error) {
	return s.sign(memberID, role, s.cfg.TTL)
}

// IssuePhone creates a long-lifetime token for OTP phone logins.
func (s *TokenService) IssuePhone(memberID string, role domain.Role) (string, error) {
	return s.sign(memberID, role, s.cfg.PhoneTTL)
}

func (s *TokenService) sign(memberID string, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.Secret))
}

// Verify checks signature, issuer, audience and expiry. Every failure mode
// collapses to domain.ErrInvalidToken so callers cannot distinguish which
// check rejected the credential.
func (s *TokenService) Verify(token string) (*ports.SessionClaims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	out := &ports.SessionClaims{
		MemberID: claims.Subject,
		Role:     role,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
