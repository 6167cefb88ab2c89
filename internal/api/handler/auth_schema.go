package handler

import "github.com/billtrack/billing-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// statusResponse and successResponse mirror the envelopes the dashboard
// client already consumes.
type statusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
	Phone    string `json:"phone"`
	// Role membership against the closed set is checked by the identity
	// service, not here, so an unknown role maps to its own error.
	Role string `json:"role" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Status  bool         `json:"status"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	Data    *domain.User `json:"data"`
	Role    string       `json:"role"`
}

type updatePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}
