package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/core/ports"
)

type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create schedules a rehearsal or service and broadcasts it to singers.
//
// @Summary      Schedule a choir event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  domain.ChoirEvent
// @Failure      400   {object}  map[string]string
// @Router       /v1/secretary/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
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

	event, err := h.eventService.Create(c.Request().Context(), ports.CreateEventInput{
		Title:     req.Title,
		Type:      req.Type,
		Location:  req.Location,
		StartsAt:  req.StartsAt,
		CreatedBy: member.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// Get returns a single event by id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.ChoirEvent
// @Failure      404  {object}  map[string]string
// @Router       /v1/me/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.eventService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// ListUpcoming returns events that have not started yet, soonest first.
//
// @Summary      List upcoming events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Router       /v1/me/events [get]
func (h *EventHandler) ListUpcoming(c echo.Context) error {
	events, err := h.eventService.ListUpcoming(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventListResponse{Events: events, Total: len(events)})
}
