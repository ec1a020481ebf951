package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

type notificationListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	Total         int                    `json:"total"`
}

type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the authenticated member's notifications, newest first.
// Pass unread=true to restrict to unread ones.
//
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread  query     bool  false  "only unread notifications"
// @Success      200     {object}  notificationListResponse
// @Router       /v1/me/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	member, err := ctxMember(c)
	if err != nil {
		return err
	}

	unreadOnly := c.QueryParam("unread") == "true"
	notifications, err := h.notificationService.ListForMember(c.Request().Context(), member.ID, unreadOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationListResponse{Notifications: notifications, Total: len(notifications)})
}

// MarkRead flags one of the member's notifications as read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Notification ID"
// @Success      204  "notification updated"
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	member, err := ctxMember(c)
	if err != nil {
		return err
	}
	if err := h.notificationService.MarkRead(c.Request().Context(), c.Param("id"), member.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
