package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisSetNXer interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisBlobRepository guarda cada objeto como un string bajo blob:<bucket>/<key>.
type RedisBlobRepository struct {
	client redisSetNXer
	prefix string
}

func NewRedisBlobRepository(client *redis.Client) *RedisBlobRepository {
	return &RedisBlobRepository{
		client: client,
		prefix: "blob:",
	}
}

func (r *RedisBlobRepository) Put(ctx context.Context, body []byte, bucket, key string) error {
	ok, err := r.client.SetNX(ctx, r.prefix+objectID(bucket, key), body, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrObjectExists
	}
	return nil
}
