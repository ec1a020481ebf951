package domain

import "time"

// ChoirEvent is a scheduled rehearsal or service.
type ChoirEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      EventType `json:"type"`
	Location  string    `json:"location,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
