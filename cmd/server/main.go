// cmd/server/main.go
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

	"github.com/redis/go-redis/v9"

	"github.com/Annany2002/collecta-backend/api"
	"github.com/Annany2002/collecta-backend/api/middleware"
	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/logger"
	"github.com/Annany2002/collecta-backend/internal/media"
	"github.com/Annany2002/collecta-backend/internal/service"
	"github.com/Annany2002/collecta-backend/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StoreBackend == config.StoreMemory {
		customLog.Warnln("Using the in-memory store; data is lost on restart")
		return storage.NewMemoryStore(), nil
	}
	return storage.ConnectDB(cfg)
}

func openMedia(cfg *config.Config) (media.Storage, error) {
	if cfg.MediaBackend == config.MediaS3 {
		customLog.Printf("Storing uploads in S3 bucket %s", cfg.S3.Bucket)
		return media.NewS3Storage(cfg.S3)
	}
	return media.NewLocalStorage(cfg.UploadsDir)
}

// openLimiter shares rate limit counters through Redis when REDIS_ADDR is set.
func openLimiter(cfg *config.Config) (middleware.Limiter, func()) {
	if cfg.RedisAddr == "" {
		return middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		customLog.Warnf("Redis at %s unreachable (%v); falling back to in-process rate limiting", cfg.RedisAddr, err)
		client.Close()
		return middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow), func() {}
	}
	customLog.Printf("Rate limiting through Redis at %s", cfg.RedisAddr)
	return middleware.NewRedisRateLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow), func() {
		if err := client.Close(); err != nil {
			customLog.Printf("Error closing Redis client: %v", err)
		}
	}
}

func main() {
	customLog.Println("Starting Collecta backend server...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(customLog, cfg.LogLevel, cfg.LogFormat)

	// 2. Initialize storage backends
	store, err := openStore(cfg)
	if err != nil {
		customLog.Fatalf("Failed to initialize store: %v", err)
	}
	defer func() {
		customLog.Println("Closing store...")
		if err := store.Close(); err != nil {
			customLog.Printf("Error closing store: %v", err)
		}
	}()

	files, err := openMedia(cfg)
	if err != nil {
		customLog.Fatalf("Failed to initialize file storage: %v", err)
	}

	limiter, closeLimiter := openLimiter(cfg)
	defer closeLimiter()

	// 3. Setup Router (passing dependencies)
	svc := service.New(store, files, cfg)
	router := api.SetupRouter(svc, cfg, limiter)

	// 4. Start Server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		customLog.Printf("Server listening on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			customLog.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	customLog.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		customLog.Printf("Error during server shutdown: %v", err)
	}
}
