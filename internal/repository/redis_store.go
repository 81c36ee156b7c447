package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore returns a Store backed by Redis. Keys are namespaced under
// "session:" so the demo's state can coexist with other users of the instance.
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb, prefix: "session:"}
}

func (r *redisStore) key(k string) string { return r.prefix + k }

func (r *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.rdb.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (r *redisStore) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, r.key(key), value, 0).Err()
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.key(key)).Err()
}

func (r *redisStore) DeleteMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	pipe := r.rdb.TxPipeline()
	for _, k := range keys {
		pipe.Del(ctx, r.key(k))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute deletion pipeline: %w", err)
	}
	return nil
}
