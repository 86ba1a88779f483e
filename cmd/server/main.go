package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spenzaga/cbt-exam-service/internal/cache"
	"github.com/spenzaga/cbt-exam-service/internal/config"
	"github.com/spenzaga/cbt-exam-service/internal/handlers"
	"github.com/spenzaga/cbt-exam-service/internal/repositories"
	"github.com/spenzaga/cbt-exam-service/internal/services"
	"github.com/spenzaga/cbt-exam-service/internal/store"
	"github.com/spenzaga/cbt-exam-service/internal/utils"
	"github.com/spenzaga/cbt-exam-service/internal/validator"
	"github.com/spenzaga/cbt-exam-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var slogger *slog.Logger
	var logger utils.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		slogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
		logger = utils.NewSlogLogger(slogger)
	} else {
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		logger = utils.NewSlogLogger(slogger)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	docStore, err := store.NewGormStore(db)
	if err != nil {
		logger.Error("failed to initialize document store", "error", err)
		os.Exit(1)
	}

	repo := repositories.NewRepository(docStore)

	// The question cache is an optimization; a missing Redis only
	// costs extra reads.
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, question cache disabled", "error", err)
	} else {
		cacheService := cache.NewRedisCache(redisClient, logger)
		repo.Question = repositories.NewCachedQuestionRepository(repo.Question, cacheService, logger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	v := validator.New()
	svc := services.NewServices(repo, publisher, v, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(svc, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
