package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/facilityops/access-system/internal/api/handler"
	"github.com/facilityops/access-system/internal/api/middleware"
	"github.com/facilityops/access-system/internal/core/domain"
	"github.com/facilityops/access-system/internal/core/ports"
)

// Dependencies carries the wired services the router exposes. The services
// are constructed in main so the background scheduler can share them.
type Dependencies struct {
	Roles     ports.RoleService
	Hooks     ports.RepairHookService
	Reminders ports.ReminderService
	Auth      ports.AuthService
	Audit     ports.AuditLog

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("access"))

	// --- Handlers ---
	roleHandler := handler.NewRoleHandler(deps.Roles)
	hookHandler := handler.NewHookHandler(deps.Hooks)
	reminderHandler := handler.NewReminderHandler(deps.Reminders)
	auditHandler := handler.NewAuditHandler(deps.Audit)
	authHandler := handler.NewAuthHandler(deps.Auth)

	authMiddleware := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(string(domain.RoleAdmin))

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Role administration ---
	roles := e.Group("/v1/roles", authMiddleware)
	roles.POST("/change", roleHandler.Change)
	roles.POST("/bootstrap", roleHandler.Bootstrap)
	roles.POST("/sync", roleHandler.Sync)

	// --- Notification triggers ---
	e.POST("/v1/hooks/repair-requests", hookHandler.RepairRequestWrite, authMiddleware)
	e.POST("/v1/maintenance/reminders/run", reminderHandler.Run, authMiddleware)

	// --- Audit read-back (admin only) ---
	e.GET("/v1/audit/logs", auditHandler.Logs, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
