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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"extract-store/internal/config"
	apihttp "extract-store/internal/http"
	"extract-store/internal/metrics"
	"extract-store/internal/repository"
	"extract-store/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	blobs, closeBlobs, err := repository.OpenBlobRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("storage init", zap.Error(err))
	}
	defer closeBlobs()

	m := metrics.New(prometheus.DefaultRegisterer)
	keyer := service.StorageKeyer{Suffix: cfg.KeySuffix}
	extractSvc := service.NewExtractService(logger, blobs, cfg.BucketName, keyer, m)

	var tokens *service.TokenService
	if cfg.JWTSecret != "" {
		tokens = service.NewTokenService(cfg.JWTSecret, 0)
	} else {
		logger.Warn("jwt secret not configured, /records is unauthenticated")
	}

	var limiter service.IngestRateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = service.NewMemoryRateLimiter(service.PerMinute(cfg.RateLimitPerMinute))
		if cfg.RedisAddr != "" {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			defer redisClient.Close()
			ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
			if err := redisClient.Ping(ctxPing).Err(); err != nil {
				logger.Warn("redis ping failed, using in-process rate limiter", zap.Error(err))
			} else {
				limiter = service.NewRedisRateLimiter(redisClient, service.PerMinute(cfg.RateLimitPerMinute))
			}
			cancel()
		}
	}

	recordHandler := apihttp.NewRecordHandler(logger, extractSvc, cfg.MaxBodyBytes)
	router := apihttp.NewRouter(logger, recordHandler, tokens, limiter, promhttp.Handler())

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.HTTPPort),
			zap.String("bucket", cfg.BucketName),
			zap.String("backend", cfg.StorageBackend),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
