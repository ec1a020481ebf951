package handler

import "github.com/choralis/choir-api/internal/core/domain"

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin secretary disciplinarian singer"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type memberListResponse struct {
	Members []*domain.Member `json:"members"`
	Total   int              `json:"total"`
}
