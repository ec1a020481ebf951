package handler

import "github.com/choralis/choir-api/internal/core/domain"

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"omitempty,e164"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin secretary disciplinarian singer"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type otpRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type otpLoginRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code"  validate:"required,len=6"`
}

type authResponse struct {
	Token  string         `json:"token,omitempty"`
	Member *domain.Member `json:"member,omitempty"`
}
