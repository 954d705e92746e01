package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"extract-store/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Cada invocacion hace una sola escritura; pocas conexiones alcanzan.
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// EnsureSchema crea la tabla de objetos si no existe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS record_objects (
			bucket       TEXT        NOT NULL,
			object_key   TEXT        NOT NULL,
			body         BYTEA       NOT NULL,
			content_type TEXT        NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (bucket, object_key)
		)
	`
	_, err := pool.Exec(ctx, ddl)
	return err
}
