package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/billtrack/billing-system/internal/api/metrics"
	"github.com/billtrack/billing-system/internal/core/domain"
	"github.com/billtrack/billing-system/internal/core/ports"
)

// AuthHandler exposes registration, login and password update.
type AuthHandler struct {
	identity ports.IdentityService
	users    ports.UserService
}

func NewAuthHandler(identity ports.IdentityService, users ports.UserService) *AuthHandler {
	return &AuthHandler{identity: identity, users: users}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.identity.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusOK, statusResponse{Status: true, Message: "User successfully created"})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.identity.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Status:  true,
		Message: "Successfully login",
		Token:   result.Token,
		Data:    result.User,
		Role:    result.User.Role,
	})
}

// UpdatePassword overwrites the caller's own password. The route sits behind
// the auth middleware and the token subject must own the target account;
// knowing an email address is not enough.
//
// @Summary      Update own password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "New credential"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/password [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.NewPassword == "" {
		return domain.ErrMissingFields
	}

	subjectID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	caller, err := h.users.Get(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}
	if caller.Email != req.Email {
		return domain.ErrForbidden
	}

	if err := h.identity.UpdatePassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		return err
	}

	metrics.PasswordUpdatesTotal.Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Password updated successfully."})
}

func loginResult(err error) string {
	switch err {
	case domain.ErrUserNotFound:
		return "not_found"
	case domain.ErrTooManyAttempts:
		return "throttled"
	case domain.ErrInvalidCredentials:
		return "invalid_credentials"
	default:
		return "error"
	}
}
