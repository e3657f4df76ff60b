// Package api assembles the HTTP surface: routes, middleware and error mapping.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/revit/marketplace/internal/api/handler"
	"github.com/revit/marketplace/internal/api/middleware"
	"github.com/revit/marketplace/internal/core/domain"
	"github.com/revit/marketplace/internal/core/ports"
)

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Auth         ports.AuthService
	Profile      ports.ProfileService
	Jobs         ports.JobService
	Applications ports.ApplicationService
	Activity     ports.ActivityService

	JWTSecret    string
	HealthChecks map[string]handler.HealthChecker
	Logger       zerolog.Logger

	// EnableSwagger mounts the OpenAPI UI under /swagger/*.
	EnableSwagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("revit_http"))

	authHandler := handler.NewAuthHandler(deps.Auth)
	profileHandler := handler.NewProfileHandler(deps.Profile)
	jobHandler := handler.NewJobHandler(deps.Jobs)
	appHandler := handler.NewApplicationHandler(deps.Applications)
	activityHandler := handler.NewActivityHandler(deps.Activity)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	auth := middleware.Auth(deps.JWTSecret)
	clientOnly := middleware.RBAC(domain.RoleClient)
	professionalOnly := middleware.RBAC(domain.RoleProfessional)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Eligibility answers anonymous callers too ---
	e.GET("/v1/jobs/:id/eligibility", appHandler.Eligibility, middleware.OptionalAuth(deps.JWTSecret))

	v1 := e.Group("/v1", auth)

	v1.GET("/me", profileHandler.Get)
	v1.PATCH("/me", profileHandler.Update)

	// --- Jobs ---
	v1.POST("/jobs", jobHandler.Create, clientOnly)
	v1.GET("/jobs", jobHandler.ListOpen)
	v1.GET("/jobs/mine", jobHandler.ListMine, clientOnly)
	v1.GET("/jobs/matching", jobHandler.ListMatching, professionalOnly)
	v1.GET("/jobs/:id", jobHandler.Get)
	v1.PATCH("/jobs/:id/status", jobHandler.SetStatus, clientOnly)
	v1.POST("/jobs/:id/assign", jobHandler.Assign, clientOnly)
	v1.GET("/jobs/:id/activity", activityHandler.List)

	// --- Applications ---
	v1.POST("/jobs/:id/applications", appHandler.Submit)
	v1.GET("/jobs/:id/applications", appHandler.ListForJob, clientOnly)
	v1.GET("/applications/mine", appHandler.ListMine, professionalOnly)
	v1.GET("/applications/:id", appHandler.Get)
	v1.POST("/applications/:id/decision", appHandler.Decide, clientOnly)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	if deps.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
