// Package main is the entrypoint for the Placekeeper API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/placekeeper/placekeeper/internal/cache"
	"github.com/placekeeper/placekeeper/internal/config"
	"github.com/placekeeper/placekeeper/internal/fixture"
	"github.com/placekeeper/placekeeper/internal/handler"
	"github.com/placekeeper/placekeeper/internal/metrics"
	"github.com/placekeeper/placekeeper/internal/middleware"
	"github.com/placekeeper/placekeeper/internal/repository"
	"github.com/placekeeper/placekeeper/internal/seed"
	"github.com/placekeeper/placekeeper/internal/server"
	"github.com/placekeeper/placekeeper/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize document store
	repo, err := repository.New(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Error("failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("connected to MongoDB", "db", cfg.DBName)

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize metrics and services
	recorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, cacheClient, recorder)
	postService := service.NewPostService(repo, cacheClient, recorder)
	commentService := service.NewCommentService(repo, cacheClient, recorder)

	// Initialize seeder
	fixtureClient := fixture.NewClient(cfg.FixtureBaseURL)
	seeder := seed.New(fixtureClient, repo, cacheClient, logger, recorder, cfg.SeedUserLimit)

	// Best-effort startup seeding; failures are logged, never fatal
	if cfg.SeedOnStart {
		seeder.Run(ctx)
	}

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	userHandler := handler.NewUserHandler(userService, logger)
	postHandler := handler.NewPostHandler(postService, logger)
	commentHandler := handler.NewCommentHandler(commentService, logger)
	seedHandler := handler.NewSeedHandler(seeder, logger)
	metricsHandler := handler.NewMetricsHandler(recorder)

	// Setup router
	r := setupRouter(h, healthHandler, userHandler, postHandler, commentHandler, seedHandler, metricsHandler, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("mongodb", repo.Close)
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"fixture_base_url", cfg.FixtureBaseURL,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	seedHandler *handler.SeedHandler,
	metricsHandler *handler.MetricsHandler,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.MaxBody(cfg.MaxRequestBodySize))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	// Health endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Metrics endpoint
	r.Get("/metrics", metricsHandler.Metrics)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Fixture reload
	r.Get("/load", seedHandler.Load)

	// Entity CRUD
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Delete("/", userHandler.DeleteAll)
		r.Get("/{id:[0-9]+}", userHandler.Get)
		r.Put("/{id:[0-9]+}", userHandler.Update)
		r.Delete("/{id:[0-9]+}", userHandler.Delete)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandler.List)
		r.Post("/", postHandler.Create)
		r.Get("/{id:[0-9]+}", postHandler.Get)
		r.Put("/{id:[0-9]+}", postHandler.Update)
		r.Delete("/{id:[0-9]+}", postHandler.Delete)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/", commentHandler.List)
		r.Post("/", commentHandler.Create)
		r.Get("/{id:[0-9]+}", commentHandler.Get)
		r.Put("/{id:[0-9]+}", commentHandler.Update)
		r.Delete("/{id:[0-9]+}", commentHandler.Delete)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
