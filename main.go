package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enabl-chat/agentapi"
	"enabl-chat/chat"
	"enabl-chat/config"
	"enabl-chat/web"
	"enabl-chat/web/middleware"
	"enabl-chat/web/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// Local development convenience; real deployments use the environment.
	_ = godotenv.Load()

	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info", "")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Load config (which includes log level setting)
	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	store := chat.NewStore()
	refresh := chat.NewRefreshCounter()
	client := agentapi.New(cfg, logger)

	chatService := services.NewChatService(client, store, refresh, cfg, logger)
	historyService, err := services.NewHistoryService(client, store, refresh, cfg.RecentCacheSize, logger)
	if err != nil {
		logger.Fatal("Failed to initialize history service", zap.Error(err))
	}
	uploadService := services.NewUploadService(cfg, logger)

	limiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		MessagesPerMinute: cfg.RateLimitMessagesPerMin,
		UploadsPerHour:    cfg.RateLimitUploadsPerHour,
		CleanupInterval:   time.Hour,
	}, logger)
	defer limiter.Stop()

	webServer := web.NewServer(cfg, logger, chatService, historyService, uploadService, limiter)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize cleanup service and start background retention sweep
	cleanupService := web.NewCleanupService(store, logger)
	go web.StartSessionCleanup(ctx, cfg, cleanupService, logger)

	port := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Info("Starting Enabl Chat web server",
		zap.String("port", port),
		zap.Bool("offline_fallback", cfg.OfflineFallback))
	if err := webServer.Start(ctx, port); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}
