package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"extract-store/internal/config"
	"extract-store/internal/db"
)

// OpenBlobRepository arma el repositorio segun STORAGE_BACKEND.
// La funcion devuelta libera las conexiones abiertas.
func OpenBlobRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (BlobRepository, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendS3:
		client, err := NewS3Client(ctx, cfg.AWSRegion, cfg.S3Endpoint, cfg.S3UsePathStyle)
		if err != nil {
			return nil, nil, fmt.Errorf("s3 client: %w", err)
		}
		logger.Info("using s3 blob repository", zap.String("region", cfg.AWSRegion), zap.String("endpoint", cfg.S3Endpoint))
		return NewS3BlobRepository(client), func() {}, nil

	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("db schema: %w", err)
		}
		logger.Info("using postgres blob repository")
		return NewPgBlobRepository(pool), pool.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("using redis blob repository", zap.String("addr", cfg.RedisAddr))
		return NewRedisBlobRepository(client), func() { _ = client.Close() }, nil

	case config.BackendMemory:
		logger.Warn("using in-memory blob repository, objects are lost on restart")
		return NewMemoryBlobRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
