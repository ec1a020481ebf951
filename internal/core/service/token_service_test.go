package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/choralis/choir-api/internal/core/domain"
)

func testTokenService() *TokenService {
	return NewTokenService(TokenConfig{
		Secret:   "test-secret",
		Issuer:   "choir-api",
		Audience: "choir-app",
		TTL:      time.Hour,
	})
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := testTokenService()

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleSecretary, domain.RoleDisciplinarian, domain.RoleSinger} {
		token, err := svc.Issue("member-1", role)
		if err != nil {
			t.Fatalf("Issue(%s) returned error: %v", role, err)
		}

		claims, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if claims.MemberID != "member-1" {
			t.Errorf("subject = %q, want member-1", claims.MemberID)
		}
		if claims.Role != role {
			t.Errorf("role = %s, want %s", claims.Role, role)
		}
		if !claims.ExpiresAt.After(time.Now()) {
			t.Errorf("expected expiry in the future, got %v", claims.ExpiresAt)
		}
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(TokenConfig{
		Secret:   "test-secret",
		Issuer:   "choir-api",
		Audience: "choir-app",
	})
	// Sign with a negative lifetime so the token is already expired.
	token, err := svc.sign("member-1", domain.RoleSinger, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := testTokenService()
	token, err := svc.Issue("member-1", domain.RoleSinger)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip the last byte of the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[len(sig)-1] == 'A' {
		sig[len(sig)-1] = 'B'
	} else {
		sig[len(sig)-1] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := testTokenService().Issue("member-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := NewTokenService(TokenConfig{
		Secret:   "other-secret",
		Issuer:   "choir-api",
		Audience: "choir-app",
	})
	if _, err := other.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenService_WrongIssuerAudience(t *testing.T) {
	foreign := NewTokenService(TokenConfig{
		Secret:   "test-secret",
		Issuer:   "someone-else",
		Audience: "choir-app",
	})
	token, err := foreign.Issue("member-1", domain.RoleSinger)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := testTokenService().Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}

	wrongAud := NewTokenService(TokenConfig{
		Secret:   "test-secret",
		Issuer:   "choir-api",
		Audience: "mobile-only",
	})
	token, err = wrongAud.Issue("member-1", domain.RoleSinger)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := testTokenService().Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong audience, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := testTokenService()
	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestTokenService_PhoneLifetime(t *testing.T) {
	svc := NewTokenService(TokenConfig{
		Secret:   "test-secret",
		Issuer:   "choir-api",
		Audience: "choir-app",
		TTL:      2 * time.Hour,
		PhoneTTL: 24 * time.Hour,
	})

	token, err := svc.IssuePhone("member-1", domain.RoleSinger)
	if err != nil {
		t.Fatalf("IssuePhone: %v", err)
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt)
	if lifetime != 24*time.Hour {
		t.Fatalf("phone token lifetime = %v, want 24h", lifetime)
	}
}
