package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/billtrack/billing-system/internal/api/handler"
	"github.com/billtrack/billing-system/internal/api/middleware"
	"github.com/billtrack/billing-system/internal/core/domain"
	"github.com/billtrack/billing-system/internal/core/ports"
)

// Services groups the use-case implementations the router exposes.
type Services struct {
	Identity ports.IdentityService
	Users    ports.UserService
	Bills    ports.BillService
	Codec    ports.TokenCodec
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("billing"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svcs.Identity, svcs.Users)
	userHandler := handler.NewUserHandler(svcs.Users)
	billHandler := handler.NewBillHandler(svcs.Bills)
	routesHandler := handler.NewRoutesHandler()

	authRequired := middleware.Auth(svcs.Codec)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.PUT("/auth/password", authHandler.UpdatePassword, authRequired)

	// --- User routes ---
	e.GET("/users", userHandler.List, authRequired, middleware.RBAC(domain.RoleAdmin))
	e.GET("/users/me", userHandler.Me, authRequired)

	// --- Bill routes ---
	e.GET("/bills", billHandler.List, authRequired)
	e.POST("/bills", billHandler.Create, authRequired, middleware.RBAC(domain.RoleBillingOfficer, domain.RoleAdmin))
	e.GET("/bills/:id", billHandler.Get, authRequired)
	e.PUT("/bills/:id", billHandler.Update, authRequired, middleware.RBAC(domain.RoleAdmin))
	e.DELETE("/bills/:id", billHandler.Delete, authRequired, middleware.RBAC(domain.RoleAdmin))

	// --- Route-guard table for the client (advisory, public) ---
	e.GET("/routes", routesHandler.Table)

	// --- Ops surface ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
