package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupTestLimiter creates a miniredis-backed RateLimiter
func setupTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(client, limit, window), mr
}

func TestRateLimiter_AdmitsUpToLimit(t *testing.T) {
	limiter, _ := setupTestLimiter(t, 10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		ok, err := limiter.Allow(ctx, "203.0.113.7")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be admitted", i+1)
		}
	}

	ok, err := limiter.Allow(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("11th request within the window should be denied")
	}
}

func TestRateLimiter_WindowExpiryResets(t *testing.T) {
	limiter, mr := setupTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "client-1")
	_, _ = limiter.Allow(ctx, "client-1")
	if ok, _ := limiter.Allow(ctx, "client-1"); ok {
		t.Fatal("expected denial at limit")
	}

	// Key TTL is the window; once it lapses the next request starts fresh.
	mr.FastForward(61 * time.Second)

	ok, err := limiter.Allow(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("request after window expiry should be admitted")
	}
}

func TestRateLimiter_RejectionDoesNotMutateCounter(t *testing.T) {
	limiter, mr := setupTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = limiter.Allow(ctx, "client-1")
	}
	for i := 0; i < 20; i++ {
		if ok, _ := limiter.Allow(ctx, "client-1"); ok {
			t.Fatal("expected denial")
		}
	}

	got, err := mr.Get(ratelimitPrefix + "client-1")
	if err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	if got != "3" {
		t.Errorf("rejections must not mutate the counter, got %s", got)
	}
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	limiter, _ := setupTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if ok, _ := limiter.Allow(ctx, "client-1"); !ok {
		t.Fatal("first client should be admitted")
	}
	if ok, _ := limiter.Allow(ctx, "client-1"); ok {
		t.Fatal("first client should now be denied")
	}
	if ok, _ := limiter.Allow(ctx, "client-2"); !ok {
		t.Error("second client must not share the first client's window")
	}
}

func TestRateLimiter_RedisUnavailable(t *testing.T) {
	limiter, mr := setupTestLimiter(t, 10, time.Minute)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "client-1")
	if err == nil {
		t.Error("expected error when redis is unreachable")
	}
}
