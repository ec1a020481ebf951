package handler

import "github.com/choralis/choir-api/internal/core/domain"

type markAttendanceRequest struct {
	MemberID   string `json:"member_id" validate:"required"`
	EventID    string `json:"event_id" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=present late absent"`
	SessionKey string `json:"session_key" validate:"omitempty,max=64"`
}

type attendanceListResponse struct {
	Records []*domain.AttendanceRecord `json:"records"`
	Total   int                        `json:"total"`
}
