package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/api/middleware"
	"github.com/choralis/choir-api/internal/core/domain"
)

// ctxMember extracts the member resolved by the authorization gate and
// fast-fails when it is absent: presence proves both Auth and the role gate
// ran before the handler.
func ctxMember(c echo.Context) (*domain.Member, error) {
	member, _ := c.Get(middleware.CtxMember).(*domain.Member)
	if member == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return member, nil
}
