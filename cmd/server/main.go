// Package main starts the app-origin API server and the offline caching
// gateway that fronts it.
package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fadilarbi/todo-offline/internal/api"
	"github.com/fadilarbi/todo-offline/internal/core/ports"
	"github.com/fadilarbi/todo-offline/internal/core/service"
	"github.com/fadilarbi/todo-offline/internal/gateway"
	"github.com/fadilarbi/todo-offline/internal/infrastructure/cache"
	mongodb "github.com/fadilarbi/todo-offline/internal/infrastructure/db/mongo"
	redisdb "github.com/fadilarbi/todo-offline/internal/infrastructure/db/redis"
	"github.com/fadilarbi/todo-offline/internal/infrastructure/store/file"
	"github.com/fadilarbi/todo-offline/internal/notify"
	"github.com/fadilarbi/todo-offline/internal/pkg/config"
	"github.com/fadilarbi/todo-offline/pkg/logger"
)

const sessionTTL = 24 * time.Hour

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "todo-offline",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Persistence backend ---
	var (
		users    ports.UserRepository
		sessions ports.SessionStore
		todos    ports.TodoRepository
	)
	routerCfg := api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Version:   cfg.Version,
		WebDir:    cfg.WebDir,
		Log:       log,
	}
	switch cfg.Store.Backend {
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		users = mongodb.NewUserRepository(db)
		sessions = mongodb.NewSessionStore(db)
		todos = mongodb.NewTodoRepository(db)
		routerCfg.Mongo = db
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
	default:
		store, err := file.New(cfg.Store.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("file store init failed")
		}
		users = file.NewUserRepository(store)
		sessions = file.NewSessionStore(store)
		todos = file.NewTodoRepository(store)
		routerCfg.DataDir = cfg.Store.DataDir
		log.Info().Str("dir", cfg.Store.DataDir).Msg("using file store")
	}

	// --- Cache backend for the gateway ---
	var cacheStorage ports.CacheStorage
	switch cfg.Cache.Backend {
	case "redis":
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()

		cacheStorage = redisdb.NewCacheStore(rdb)
		routerCfg.Redis = rdb
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis cache")
	default:
		cacheStorage = cache.NewMemoryStore()
	}

	// --- Services ---
	authService := service.NewAuthService(users, sessions, cfg.JWTSecret, sessionTTL, log)
	if err := authService.EnsureSeed(ctx); err != nil {
		log.Fatal().Err(err).Msg("demo user seed failed")
	}
	todoService := service.NewTodoService(todos, log)

	// --- Notification fan-out ---
	platform := notify.NewPlatform(log)
	platform.RequestPermission()
	dispatcher := notify.NewDispatcher(cfg.Notifier.Workers, platform, log)
	dispatcher.Start(ctx)
	board := notify.NewBoard(0)
	beeper := notify.NewTerminalBeeper()

	deadlines := service.NewDeadlineService(todos, sessions, dispatcher, board, beeper, cfg.Notifier.Interval, log)
	go deadlines.Run(ctx)

	// --- App-origin server ---
	routerCfg.Auth = authService
	routerCfg.Todos = todoService
	routerCfg.Banners = board
	app := api.NewRouter(routerCfg)

	go func() {
		if err := app.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("app server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("version", cfg.Version).Msg("app server listening")

	// --- Offline gateway ---
	upstream, err := url.Parse(cfg.Gateway.Upstream)
	if err != nil {
		log.Fatal().Err(err).Str("upstream", cfg.Gateway.Upstream).Msg("invalid gateway upstream")
	}
	ctrl := gateway.NewController(gateway.Config{
		Version:    cfg.Version,
		Upstream:   upstream,
		Client:     &http.Client{Timeout: cfg.Gateway.FetchTimeout},
		Reconciler: gateway.NoopReconciler{Log: log},
		Sink:       dispatcher,
		Reminders:  deadlines.Scan,
	}, cacheStorage, log)

	go func() {
		// The gateway comes up serving pass-through; the cache warms in the
		// background so a slow upstream never blocks startup.
		if err := ctrl.Install(ctx); err != nil {
			log.Error().Err(err).Msg("cache install failed, gateway stays network-only")
			return
		}
		if err := ctrl.Activate(ctx); err != nil {
			log.Error().Err(err).Msg("cache activation failed")
		}
	}()

	gw := gateway.NewServer(ctrl)
	go func() {
		if err := gw.Start(":" + cfg.GatewayPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("gateway server failed")
		}
	}()
	log.Info().Str("port", cfg.GatewayPort).Msg("offline gateway listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range []*echo.Echo{gw, app} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("server shutdown failed")
		}
	}
}
