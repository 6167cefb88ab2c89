package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC rejects requests whose verified role is not in the allowed set.
// It assumes Auth ran first; an absent role reads as no membership and
// therefore 403. An empty allowed set means any authenticated caller.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
