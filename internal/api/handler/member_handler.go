package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/core/ports"
)

type MemberHandler struct {
	memberService ports.MemberAdminService
}

func NewMemberHandler(memberService ports.MemberAdminService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List returns every member of the choir.
//
// @Summary      List members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  memberListResponse
// @Router       /v1/admin/members [get]
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.memberService.ListMembers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, memberListResponse{Members: members, Total: len(members)})
}

// SetRole changes a member's role.
//
// @Summary      Assign a member role
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Member ID"
// @Param        body  body      setRoleRequest  true  "New role"
// @Success      204   "role updated"
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/members/{id}/role [put]
func (h *MemberHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.memberService.SetRole(c.Request().Context(), c.Param("id"), req.Role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetActive toggles a member account on or off.
//
// @Summary      Activate or deactivate a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Member ID"
// @Param        body  body      setActiveRequest  true  "Active flag"
// @Success      204   "member updated"
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/members/{id}/active [put]
func (h *MemberHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.memberService.SetActive(c.Request().Context(), c.Param("id"), *req.Active); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
