package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/billtrack/billing-system/internal/core/domain"
	"github.com/billtrack/billing-system/internal/core/ports"
)

// UserHandler serves the account views used by the dashboard.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type userListResponse struct {
	Data []*domain.User `json:"data"`
}

type userResponse struct {
	Data *domain.User `json:"data"`
}

// List returns every account, sanitized. Admin only (enforced by the route).
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Data: users})
}

// Me returns the token subject's own record.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	subjectID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Data: user})
}
