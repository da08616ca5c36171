package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/SIH-2025/edusafe-service/internal/config"
	"github.com/SIH-2025/edusafe-service/internal/events"
	"github.com/SIH-2025/edusafe-service/internal/handlers"
	"github.com/SIH-2025/edusafe-service/internal/repositories/postgres"
	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
	"github.com/SIH-2025/edusafe-service/internal/validator"
	"github.com/SIH-2025/edusafe-service/pkg"
)

// NewServeCmd starts the HTTP server.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(slogLogger)
	logger := utils.NewSlogLogger(slogLogger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer closeDatabase(db)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			slogLogger.Warn("Failed to initialize Redis, caching disabled", "error", err)
		} else {
			defer redisClient.Close()
		}
	}

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})

	publisher, err := newEventPublisher(cfg, slogLogger)
	if err != nil {
		return err
	}

	v := validator.New()

	serviceManager := services.NewServiceManager(repo, slogLogger, v, publisher)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	authMiddleware := handlers.NewJWTAuthMiddleware(cfg.JWTSecret, repo.User())
	handlerManager := handlers.NewHandlerManager(serviceManager, logger, authMiddleware, repo, cfg.UploadDir)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	monitor := pkg.StartHealthMonitor(db, 10*time.Second)
	defer monitor.Stop()

	router := gin.New()
	handlers.SetupMiddleware(router, logger, monitor.Available)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		slogLogger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slogLogger.Error("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slogLogger.Error("Server forced to shutdown", "error", err)
	}
	if err := serviceManager.Shutdown(ctx); err != nil {
		slogLogger.Error("Failed to shutdown services", "error", err)
	}

	slogLogger.Info("Server exited")
	return nil
}

// newEventPublisher connects to Kafka when brokers are configured and falls
// back to the in-memory collector otherwise.
func newEventPublisher(cfg *config.Config, logger *slog.Logger) (events.EventPublisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("No Kafka brokers configured, events will not be forwarded")
		return events.NewMockEventPublisher(logger), nil
	}

	publisher, err := events.NewKafkaEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	logger.Info("Kafka event publisher initialized", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return publisher, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
