package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/core/ports"
)

type AttendanceHandler struct {
	attendanceService ports.AttendanceService
}

func NewAttendanceHandler(attendanceService ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Mark records a member's attendance for an event. Recording an absence or a
// lateness may trigger escalation; escalation outcomes never fail the write.
//
// @Summary      Mark attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      markAttendanceRequest  true  "Attendance record"
// @Success      201   {object}  domain.AttendanceRecord
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/discipline/attendance [post]
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req markAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	member, err := ctxMember(c)
	if err != nil {
		return err
	}

	record, err := h.attendanceService.Mark(c.Request().Context(), ports.MarkAttendanceInput{
		MemberID:   req.MemberID,
		EventID:    req.EventID,
		SessionKey: req.SessionKey,
		Status:     req.Status,
		RecordedBy: member.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, record)
}

// ListByEvent returns every attendance record for one event.
//
// @Summary      List attendance for an event
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  attendanceListResponse
// @Router       /v1/discipline/events/{id}/attendance [get]
func (h *AttendanceHandler) ListByEvent(c echo.Context) error {
	records, err := h.attendanceService.ListByEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attendanceListResponse{Records: records, Total: len(records)})
}
