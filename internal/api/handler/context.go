package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/billtrack/billing-system/internal/api/middleware"
)

// ctxIdentity extracts the verified identity injected by the Auth middleware.
// Presence of both values proves the middleware ran; a handler reached
// without them is a wiring error and answers 401, never a nil-deref.
func ctxIdentity(c echo.Context) (subjectID, role string, err error) {
	subjectID, _ = c.Get(middleware.CtxSubjectID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if subjectID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return subjectID, role, nil
}
