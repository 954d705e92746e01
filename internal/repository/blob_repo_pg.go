package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgExecer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PgBlobRepository guarda objetos en la tabla record_objects.
type PgBlobRepository struct {
	db pgExecer
}

func NewPgBlobRepository(pool *pgxpool.Pool) *PgBlobRepository {
	return &PgBlobRepository{db: pool}
}

func (r *PgBlobRepository) Put(ctx context.Context, body []byte, bucket, key string) error {
	const query = `
		INSERT INTO record_objects (bucket, object_key, body, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (bucket, object_key) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query,
		bucket,
		key,
		body,
		"application/json",
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrObjectExists
	}
	return nil
}
