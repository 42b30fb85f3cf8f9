package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/cache"
	"github.com/SAP-F-2025/readiness-service/internal/config"
	"github.com/SAP-F-2025/readiness-service/internal/events"
	"github.com/SAP-F-2025/readiness-service/internal/handlers"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/readiness-service/internal/services"
	"github.com/SAP-F-2025/readiness-service/internal/utils"
	"github.com/SAP-F-2025/readiness-service/internal/validator"
	"github.com/SAP-F-2025/readiness-service/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	if err := run(cfg, logger); err != nil {
		logger.LogError(err, "Server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := postgres.AutoMigrate(db); err != nil {
		return err
	}
	repo := postgres.NewRepository(db)
	defer repo.Close()

	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process cache", "error", err)
		cacheService = cache.NewMemoryCache()
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, logger.Slog())
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		logger.Warn("Event publisher unavailable, events will only be logged", "error", err)
		publisher = events.NewMockEventPublisher(logger.Slog())
	}
	defer publisher.Close()

	catalog, err := readiness.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		return err
	}
	logger.Info("Catalog loaded", "topics", len(catalog.Topics), "mock_tests", len(catalog.MockTests))

	serviceManager := services.NewServiceManager(services.ServiceDependencies{
		Repo:              repo,
		Cache:             cacheService,
		Publisher:         publisher,
		Catalog:           catalog,
		Validator:         validator.New(catalog),
		Logger:            logger.Slog(),
		Scoring:           cfg.Scoring.Weights,
		WeakAreaLimit:     cfg.Scoring.WeakAreaLimit,
		ReadinessCacheTTL: cfg.ReadinessCacheTTL,
		WeeklyGoalMinutes: cfg.WeeklyGoalMinutes,
	})

	if !cfg.Auth.Enabled() && !cfg.Auth.AllowHeaderAuth {
		logger.Warn("Casdoor is not configured and header auth is off; every API request will be rejected")
	}
	auth := handlers.AuthMiddleware(handlers.NewCasdoorParser(cfg.Auth), cfg.Auth.AllowHeaderAuth, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.ContextLogger(logger), utils.LoggerMiddleware(logger))
	handlers.NewHandlerManager(serviceManager, auth, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
