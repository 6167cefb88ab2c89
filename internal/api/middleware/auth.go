package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/billtrack/billing-system/internal/api/metrics"
	"github.com/billtrack/billing-system/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxSubjectID = "subject_id"
	CtxRole      = "role"
)

// Auth verifies the bearer token via the codec and injects the verified
// identity into the request context. It is the sole trust boundary for
// protected routes: a missing, malformed or expired token means 401. The
// credential store is never consulted here.
func Auth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1], time.Now().UTC())
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("accepted").Inc()

			c.Set(CtxSubjectID, claims.SubjectID)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}
