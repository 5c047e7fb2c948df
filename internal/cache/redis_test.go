package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStore connects to REDIS_ADDR (default localhost:6379) and skips the
// test when no server answers.
func redisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	s, err := NewRedisStore(context.Background(), &redis.Options{Addr: addr, DB: 15})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRedisStore_ScheduleRoundTrip(t *testing.T) {
	c := NewWithStore(redisStore(t))
	ctx := context.Background()

	key := sampleKey("2026-02-28")
	key.Iqamah = fmt.Sprintf("test-%d", time.Now().UnixNano())
	resp := sampleResponse(t, "2026-02-28")

	if got := c.LoadSchedule(ctx, key); got != nil {
		t.Fatalf("fresh key should miss, got %+v", got)
	}
	if err := c.SaveSchedule(ctx, key, resp); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}
	got := c.LoadSchedule(ctx, key)
	if got == nil {
		t.Fatal("LoadSchedule returned nil after save")
	}
	if got.Date != resp.Date {
		t.Errorf("Date = %q, want %q", got.Date, resp.Date)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	s := redisStore(t)
	ctx := context.Background()
	key := fmt.Sprintf("ttl-%d", time.Now().UnixNano())

	if err := s.Set(ctx, key, []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	ttl, err := s.rdb.TTL(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want within (0, 1m]", ttl)
	}
}

func TestNewRedis_Unreachable(t *testing.T) {
	if _, err := NewRedis(context.Background(), "127.0.0.1:1"); err == nil {
		t.Fatal("expected error for unreachable redis")
	}
}
