package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/casedesk/casedesk-api/docs"
	"github.com/casedesk/casedesk-api/internal/api/handler"
	"github.com/casedesk/casedesk-api/internal/api/middleware"
	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
	"github.com/casedesk/casedesk-api/internal/core/service"
	mongodb "github.com/casedesk/casedesk-api/internal/infrastructure/db/mongo"
	redisdb "github.com/casedesk/casedesk-api/internal/infrastructure/db/redis"
)

// Deps carries the externally constructed dependencies the router wires up.
type Deps struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Tokens     ports.TokenService
	Audit      ports.AuditRecorder
	BcryptCost int
	Secure     bool // production: cookies require HTTPS
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("casedesk"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	appointmentRepo := mongodb.NewAppointmentRepository(deps.DB)
	caseRepo := mongodb.NewCaseRepository(deps.DB)
	denylist := redisdb.NewTokenDenylist(deps.Redis)

	// --- Services ---
	sessionService := service.NewSessionService(userRepo, deps.Tokens, denylist, deps.Audit, deps.BcryptCost, deps.Logger)
	userService := service.NewUserService(userRepo, deps.Logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, deps.Logger)
	caseService := service.NewCaseService(caseRepo, userRepo, deps.Logger)
	analyticsService := service.NewAnalyticsService(appointmentRepo, caseRepo)

	// --- Handlers ---
	cookies := handler.CookieSettings{
		AccessTTL:  deps.Tokens.AccessTTL(),
		RefreshTTL: deps.Tokens.RefreshTTL(),
		Secure:     deps.Secure,
	}
	authHandler := handler.NewAuthHandler(sessionService, cookies)
	userHandler := handler.NewUserHandler(userService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	caseHandler := handler.NewCaseHandler(caseService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	authRequired := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/refresh-token", authHandler.Refresh)

	// --- User routes ---
	users := e.Group("/api/users", authRequired)
	users.GET("/me", userHandler.Me)
	users.GET("", userHandler.List, adminOnly)
	users.PATCH("/:id", userHandler.Update, adminOnly)

	// --- Appointment routes ---
	appointments := e.Group("/api/appointments", authRequired)
	appointments.POST("", appointmentHandler.Create)
	appointments.GET("", appointmentHandler.List)
	appointments.PUT("/:id", appointmentHandler.Update)
	appointments.DELETE("/:id", appointmentHandler.Delete)

	// --- Case routes ---
	cases := e.Group("/api/cases", authRequired)
	cases.POST("", caseHandler.Create, adminOnly)
	cases.PUT("/:id/assign", caseHandler.Assign, adminOnly)
	cases.DELETE("/:id", caseHandler.Delete, adminOnly)
	cases.GET("", caseHandler.List)

	// --- Analytics ---
	analytics := e.Group("/api/analytics", authRequired)
	analytics.GET("/dashboard", analyticsHandler.Dashboard)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
