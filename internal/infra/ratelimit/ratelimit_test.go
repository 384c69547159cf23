package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

func TestLocalLimiter_BurstThenDeny(t *testing.T) {
	l := NewLocalLimiter(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("request %d denied inside burst", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("fourth request allowed")
	}
	if ok, _ := l.Allow(ctx, "5.6.7.8"); !ok {
		t.Fatal("keys must not share a bucket")
	}
}

func TestRedisLimiter_Integration(t *testing.T) {
	addr := os.Getenv("SALOON_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SALOON_TEST_REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	l := NewRedisLimiter(rdb, 2, time.Minute, "test-"+uuid.NewString())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "k")
		if err != nil || !ok {
			t.Fatalf("request %d: ok=%v err=%v", i+1, ok, err)
		}
	}
	if ok, err := l.Allow(ctx, "k"); err != nil || ok {
		t.Fatalf("third request: ok=%v err=%v", ok, err)
	}
}
