package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/fadilarbi/todo-offline/docs"
	"github.com/fadilarbi/todo-offline/internal/api/handler"
	"github.com/fadilarbi/todo-offline/internal/api/middleware"
	"github.com/fadilarbi/todo-offline/internal/core/ports"
)

// RouterConfig carries the wiring for the app-origin server. Mongo and
// Redis are nil when the file store and in-memory cache are configured;
// the readiness probe skips them accordingly.
type RouterConfig struct {
	JWTSecret string
	Version   string
	WebDir    string
	DataDir   string

	Auth    ports.AuthService
	Todos   ports.TodoService
	Banners ports.BannerBoard

	Mongo *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// Request metrics go to a per-router registry so building a second
	// router (tests) never double-registers collectors; /metrics serves
	// both it and the default registry holding the domain counters.
	promRegistry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "todo",
		Registerer: promRegistry,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	todoHandler := handler.NewTodoHandler(cfg.Todos)
	notificationHandler := handler.NewNotificationHandler(cfg.Banners)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Todo routes (session required) ---
	todos := e.Group("/todos", authMiddleware)
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Add)
	todos.PATCH("/:id/toggle", todoHandler.Toggle)
	todos.PATCH("/:id", todoHandler.Edit)
	todos.DELETE("/:id", todoHandler.Delete)
	todos.DELETE("", todoHandler.DeleteAll)

	// --- Notifications ---
	e.GET("/notifications", notificationHandler.Active)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Mongo, cfg.Redis, cfg.DataDir)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{promRegistry, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Version endpoint polled by the gateway's update check. Plain text so
	// the comparison stays a string equality.
	e.GET("/app/version", func(c echo.Context) error {
		return c.String(http.StatusOK, cfg.Version)
	})

	// --- Static assets (app shell) ---
	if cfg.WebDir != "" {
		e.Static("/", cfg.WebDir)
	}

	return e
}
