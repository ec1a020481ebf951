package handler

import "github.com/choralis/choir-api/internal/core/domain"

type submitClaimRequest struct {
	Title         string `json:"title" validate:"required,max=120"`
	Description   string `json:"description" validate:"required,max=2000"`
	Severity      string `json:"severity" validate:"required,oneof=low medium high"`
	IsAnonymous   bool   `json:"is_anonymous"`
	AttachmentRef string `json:"attachment_ref" validate:"omitempty,max=256"`
}

type updateClaimStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_review resolved rejected"`
}

type claimListResponse struct {
	Claims []*domain.Claim `json:"claims"`
	Total  int             `json:"total"`
}
