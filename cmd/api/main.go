// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyyur/internal/config"
	"fyyur/internal/db"
	"fyyur/internal/db/migrations"
	"fyyur/internal/routes"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx := context.Background()

	// Create database if it doesn't exist
	if err := db.CreateDatabaseIfNotExists(ctx, cfg.DatabaseURL, logger); err != nil {
		logger.Fatal("Failed to ensure database exists", zap.Error(err))
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Run database migrations
	if err := migrations.RunMigrations(ctx, database.DB, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	var s3Config *config.S3Config
	if cfg.ImageUploadsEnabled() {
		s3Config, err = config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to configure S3", zap.Error(err))
		}
		logger.Info("Image uploads enabled", zap.String("bucket", s3Config.Bucket))
	} else {
		logger.Info("Image uploads disabled, S3_BUCKET_NAME is not set")
	}

	// Create router and setup routes
	router, err := routes.SetupRoutes(database.DB, cfg, s3Config, logger)
	if err != nil {
		logger.Fatal("Failed to set up routes", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give server 5 seconds to finish current requests
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server exiting")
}

func initLogger(level string) *zap.Logger {
	var logLevel zapcore.Level
	switch level {
	case "debug":
		logLevel = zap.DebugLevel
	case "warn":
		logLevel = zap.WarnLevel
	case "error":
		logLevel = zap.ErrorLevel
	default:
		logLevel = zap.InfoLevel
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(logLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
