package domain

import (
	"errors"
	"time"
)

// Role is the closed set of choir roles.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleSecretary      Role = "secretary"
	RoleDisciplinarian Role = "disciplinarian"
	RoleSinger         Role = "singer"
)

// ParseRole converts a loose string into a Role, rejecting anything outside
// the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSecretary, RoleDisciplinarian, RoleSinger:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// Permits reports whether a caller holding the role may act in a namespace
// owned by required. Admin is the single superuser; every other role only
// satisfies its own namespace.
func (r Role) Permits(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidOTP = errors.New("invalid or expired code")
var ErrMemberNotFound = errors.New("member not found")
var ErrMemberExists = errors.New("member already exists")
var ErrAccountInactive = errors.New("account is deactivated")
var ErrForbidden = errors.New("access forbidden")

// Member models a registered choir member (the security principal).
type Member struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
