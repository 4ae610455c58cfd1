package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/edudz/platform-service/internal/config"
	"github.com/edudz/platform-service/internal/events"
	"github.com/edudz/platform-service/internal/handlers"
	"github.com/edudz/platform-service/internal/repositories"
	"github.com/edudz/platform-service/internal/repositories/memory"
	"github.com/edudz/platform-service/internal/repositories/postgres"
	"github.com/edudz/platform-service/internal/scheduler"
	"github.com/edudz/platform-service/internal/services"
	"github.com/edudz/platform-service/internal/utils"
	"github.com/edudz/platform-service/internal/validator"
	"github.com/edudz/platform-service/pkg"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize storage
	var repo repositories.Repository
	var redisClient *redis.Client
	switch cfg.StorageBackend {
	case "postgres":
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}

		if cfg.RedisURL != "" {
			redisClient, err = pkg.NewRedisClient(cfg)
			if err != nil {
				logger.Warn("Failed to initialize Redis, continuing without cache", "error", err)
			}
		}

		repo = postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{
			DB:          db,
			RedisClient: redisClient,
		})
	case "memory":
		repo = memory.NewMemoryRepository()
	default:
		log.Fatalf("Unknown storage backend %q", cfg.StorageBackend)
	}

	// Initialize event publisher
	var publisher events.EventPublisher
	switch cfg.EventPublisher {
	case "kafka":
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventTopic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
		publisher = kafkaPublisher
	case "gochannel":
		publisher = events.NewGoChannelPublisher(cfg.EventTopic, slogLogger)
	case "none":
		publisher = events.NopPublisher{}
	default:
		log.Fatalf("Unknown event publisher %q", cfg.EventPublisher)
	}

	// Initialize validator and services
	v := validator.New()
	serviceManager := services.NewServiceManager(repo, v, publisher, logger)

	// Derived ratings are recomputed once on startup so a restored backup
	// or fresh migration starts from consistent counters.
	if cfg.RecomputeOnStart {
		if _, err := serviceManager.Subscription.RecomputeRatings(context.Background()); err != nil {
			logger.Warn("Startup rating sweep failed", "error", err)
		}
	}

	// Schedule the periodic sweep
	jobScheduler := scheduler.New(logger)
	jobScheduler.Register(scheduler.NewRecomputeJob(serviceManager.Subscription, cfg.RecomputeInterval))
	jobScheduler.Start(context.Background())

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, repo, logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "storage", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	jobScheduler.Stop()

	if err := publisher.Close(); err != nil {
		log.Printf("Failed to close event publisher: %v", err)
	}

	if err := repo.Close(); err != nil {
		log.Printf("Failed to close storage: %v", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("Server exited")
}
