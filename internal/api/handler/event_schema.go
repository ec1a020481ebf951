package handler

import (
	"time"

	"github.com/choralis/choir-api/internal/core/domain"
)

type createEventRequest struct {
	Title    string    `json:"title" validate:"required,max=120"`
	Type     string    `json:"type" validate:"required,oneof=rehearsal service"`
	Location string    `json:"location" validate:"omitempty,max=200"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
}

type eventListResponse struct {
	Events []*domain.ChoirEvent `json:"events"`
	Total  int                  `json:"total"`
}
