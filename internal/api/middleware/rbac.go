package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/api/metrics"
	"github.com/choralis/choir-api/internal/core/domain"
	"github.com/choralis/choir-api/internal/core/ports"
)

// CtxMember holds the freshly resolved *domain.Member after RequireRole ran.
const CtxMember = "member"

// RequireRole gates a route group on a namespace role. It re-resolves the
// member from storage on every request: the token only establishes identity,
// the stored role and active flag decide authorization. A deactivated
// account is rejected with a message distinct from a bad token so clients
// can tell "log in again" apart from "contact an administrator".
func RequireRole(auth ports.AuthService, required domain.Role) echo.MiddlewareFunc {
	return requireMember(auth, func(role domain.Role) bool {
		return role.Permits(required)
	})
}

// RequireActive gates routes any authenticated, active member may use (own
// notifications, event listings). Same resolution path as RequireRole
// without the namespace check.
func RequireActive(auth ports.AuthService) echo.MiddlewareFunc {
	return requireMember(auth, func(domain.Role) bool { return true })
}

func requireMember(auth ports.AuthService, permitted func(domain.Role) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			memberID, _ := c.Get(CtxMemberID).(string)
			if memberID == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			member, err := auth.Resolve(c.Request().Context(), memberID)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrAccountInactive):
					metrics.AuthFailuresTotal.WithLabelValues("inactive_account").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "account deactivated, contact an administrator")
				case errors.Is(err, domain.ErrMemberNotFound):
					metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown member")
				}
				return err
			}

			if !permitted(member.Role) {
				metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}

			c.Set(CtxMember, member)
			return next(c)
		}
	}
}
