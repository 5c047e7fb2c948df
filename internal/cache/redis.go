package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "prayer-times:"

// RedisStore shares the cache between machines through a Redis server.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedis connects to addr and returns a Redis-backed Cache. The server is
// pinged once so a bad address fails here rather than on first use.
func NewRedis(ctx context.Context, addr string) (*Cache, error) {
	s, err := NewRedisStore(ctx, &redis.Options{Addr: addr})
	if err != nil {
		return nil, err
	}
	return NewWithStore(s), nil
}

// NewRedisStore builds a store from client options.
func NewRedisStore(ctx context.Context, opts *redis.Options) (*RedisStore, error) {
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("cannot reach redis at %s: %w", opts.Addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
