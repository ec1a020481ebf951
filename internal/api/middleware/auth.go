package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/api/metrics"
	"github.com/choralis/choir-api/internal/core/ports"
)

// Context keys set by the Auth middleware.
const (
	CtxMemberID  = "member_id"
	CtxTokenRole = "token_role"
)

// Auth validates the bearer token and injects the verified subject into the
// request context. The token role is stored for logging only; authorization
// decisions use the role re-resolved from storage (see RequireRole).
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxMemberID, claims.MemberID)
			c.Set(CtxTokenRole, string(claims.Role))

			return next(c)
		}
	}
}
