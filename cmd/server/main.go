package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackerdash/internal/delivery"
	"trackerdash/internal/domain"
	"trackerdash/internal/infrastructure"
	"trackerdash/internal/usecase"
	"trackerdash/pkg/config"
	"trackerdash/pkg/logger"
	"trackerdash/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   true,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]any{
		"port":         cfg.Server.Port,
		"snapshot_ttl": cfg.Snapshot.TTL,
		"workers":      cfg.Snapshot.WorkerPoolSize,
	}).Info("Starting trackerdash")

	// amounts are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	backend := infrastructure.NewBackendClient(cfg.Backend, log, appMetrics)

	repo, redisClient, err := setupSnapshotRepository(cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to setup snapshot store")
		os.Exit(1)
	}

	snapshots := usecase.NewSnapshotService(repo, backend, log, appMetrics, cfg.Snapshot.TTL, cfg.Snapshot.WorkerPoolSize)
	dashboard := usecase.NewDashboardService(snapshots, log, appMetrics, time.Local)
	links := usecase.NewLinksService(backend, backend, log)

	handlers := delivery.NewHTTPHandlers(dashboard, snapshots, links, log, delivery.NewFilterBinder(dashboard.Location()))

	gin.SetMode(gin.ReleaseMode)
	router := delivery.NewHTTPRouter(handlers, log, appMetrics, prometheus.DefaultGatherer, cfg.Server.HTTPTimeout)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("address", srv.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server failed")
			os.Exit(1)
		}
	}()

	gracefulShutdown(srv, redisClient, log)
}

// setupSnapshotRepository picks Redis when an address is configured and the
// in-memory store otherwise
func setupSnapshotRepository(cfg *config.Config, log *logger.Logger) (domain.SnapshotRepository, *redis.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Info("Keeping snapshots in memory")
		return infrastructure.NewSnapshotRepository(log), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	repo := infrastructure.NewRedisSnapshotRepository(client, cfg.Snapshot.TTL, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.WithField("addr", cfg.Redis.Addr).Info("Keeping snapshots in redis")
	return repo, client, nil
}

func gracefulShutdown(srv *http.Server, redisClient *redis.Client, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.WithField("signal", sig.String()).Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.WithError(err).Error("Error closing Redis")
		}
	}

	log.Info("Graceful shutdown completed")
}
