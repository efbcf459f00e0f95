package store

import (
	"context"
	"errors"
	"time"

	"github.com/hellodex/daofin-dashboard/logger"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore shares resolved content between dashboard processes. Failures
// are logged and treated as cache misses.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisClient(addr string, passwd string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        passwd,
		DB:              db,
		PoolSize:        10,
		MinIdleConns:    2,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		PoolTimeout:     4 * time.Second,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	v, err := r.rdb.Get(ctx, contentKey(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Error().Func(logger.WithCategory(logger.CategoryStore)).Err(err).Str("key", key).Msg("redis get failed")
		}
		return "", false
	}
	return v, true
}

func (r *RedisStore) Set(ctx context.Context, key string, value string) {
	if err := r.rdb.Set(ctx, contentKey(key), value, r.ttl).Err(); err != nil {
		log.Error().Func(logger.WithCategory(logger.CategoryStore)).Err(err).Str("key", key).Msg("redis set failed")
	}
}

// Tiered reads through a fast local store before a shared one and fills the
// local store on shared hits.
type Tiered struct {
	Local  ContentStore
	Shared ContentStore
}

func (t Tiered) Get(ctx context.Context, key string) (string, bool) {
	if v, ok := t.Local.Get(ctx, key); ok {
		return v, true
	}
	v, ok := t.Shared.Get(ctx, key)
	if ok {
		t.Local.Set(ctx, key, v)
	}
	return v, ok
}

func (t Tiered) Set(ctx context.Context, key string, value string) {
	t.Local.Set(ctx, key, value)
	t.Shared.Set(ctx, key, value)
}
