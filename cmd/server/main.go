package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vikash-ftw/VideoTube-Backend/internal/auth"
	"github.com/vikash-ftw/VideoTube-Backend/internal/cache"
	"github.com/vikash-ftw/VideoTube-Backend/internal/config"
	"github.com/vikash-ftw/VideoTube-Backend/internal/database"
	"github.com/vikash-ftw/VideoTube-Backend/internal/handlers"
	"github.com/vikash-ftw/VideoTube-Backend/internal/logger"
	"github.com/vikash-ftw/VideoTube-Backend/internal/metrics"
	"github.com/vikash-ftw/VideoTube-Backend/internal/social"
	"github.com/vikash-ftw/VideoTube-Backend/internal/storage"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== VideoTube server starting ===",
		zap.String("environment", cfg.Environment),
	)

	// Initialize database
	if err := database.Initialize(); err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional; rate limiting degrades gracefully without it
	redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		logger.Log.Warn("Redis unavailable, continuing without rate limiting", zap.Error(err))
	} else {
		defer redisClient.Close()
	}

	// Prometheus metrics
	metrics.Initialize()

	// S3 uploader
	s3Uploader, err := storage.NewS3Uploader(cfg.AWSRegion, cfg.AWSBucket, cfg.CDNBaseURL)
	if err != nil {
		logger.Log.Fatal("Failed to initialize S3 uploader", zap.Error(err))
	}
	if err := s3Uploader.CheckBucketAccess(context.Background()); err != nil {
		logger.Log.Warn("S3 bucket access failed, media uploads will fail", zap.Error(err))
	}

	// Services and handlers
	authService := auth.NewService(database.DB, cfg)
	toggleService := social.NewToggleService(database.DB)
	h := handlers.NewHandlers(authService, toggleService, s3Uploader, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.SetupRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.Info("Listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exited")
}
