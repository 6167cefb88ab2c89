package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/billtrack/billing-system/internal/routeguard"
)

// RoutesHandler publishes the advisory route-guard table so the dashboard
// client renders from the same role map the server enforces.
type RoutesHandler struct{}

func NewRoutesHandler() *RoutesHandler {
	return &RoutesHandler{}
}

type routesResponse struct {
	Login  string             `json:"login"`
	Routes []routeguard.Route `json:"routes"`
}

func (h *RoutesHandler) Table(c echo.Context) error {
	return c.JSON(http.StatusOK, routesResponse{
		Login:  routeguard.LoginPath,
		Routes: routeguard.Table,
	})
}
