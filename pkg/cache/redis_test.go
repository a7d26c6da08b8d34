package cache

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/ghuser/stockroom/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{
		RedisURL: url,
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("not-a-valid-url"))
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("redis://localhost:19999"))
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestItemCacheKey(t *testing.T) {
	if got := key(42); got != "item:42" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := generationKey(42); got != "item:42:gen" {
		t.Fatalf("unexpected generation key %q", got)
	}
}

func TestIsMiss(t *testing.T) {
	if IsMiss(fmt.Errorf("cache get: %w", context.Canceled)) {
		t.Fatal("a canceled context is not a cache miss")
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	ctx := context.Background()

	rc, err := NewRedisClient(ctx, newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	t.Run("Ping_Success", func(t *testing.T) {
		if err := rc.Ping(ctx); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("ItemCache_SetGetDelete", func(t *testing.T) {
		c := NewItemCache(rc)
		const id = int64(987654321)
		_ = c.Delete(ctx, id)

		if _, err := c.Get(ctx, id); !IsMiss(err) {
			t.Fatalf("expected miss before Set, got %v", err)
		}

		gen, err := c.Generation(ctx, id)
		if err != nil {
			t.Fatalf("Generation: %v", err)
		}
		want := &CachedItem{ID: id, Code: "AB1", Description: "WIDGET", Quantity: 5, Location: "BIN1"}
		if ok, err := c.SetIfCurrent(ctx, want, gen); err != nil || !ok {
			t.Fatalf("SetIfCurrent: %v, %v", ok, err)
		}
		got, err := c.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if *got != *want {
			t.Fatalf("got %+v, want %+v", got, want)
		}

		ttl, err := rc.Client().TTL(ctx, key(id)).Result()
		if err != nil || ttl <= 0 || ttl > ItemCacheTTL {
			t.Fatalf("unexpected TTL %v (%v)", ttl, err)
		}

		if err := c.Delete(ctx, id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := c.Get(ctx, id); !IsMiss(err) {
			t.Fatalf("expected miss after Delete, got %v", err)
		}
	})

	t.Run("ItemCache_StaleFillDropped", func(t *testing.T) {
		c := NewItemCache(rc)
		const id = int64(987654322)

		gen, err := c.Generation(ctx, id)
		if err != nil {
			t.Fatalf("Generation: %v", err)
		}
		if err := c.Delete(ctx, id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		stale := &CachedItem{ID: id, Code: "OLD", Description: "OLD", Quantity: 1}
		ok, err := c.SetIfCurrent(ctx, stale, gen)
		if err != nil {
			t.Fatalf("SetIfCurrent: %v", err)
		}
		if ok {
			t.Fatal("fill loaded before Delete was stored")
		}
		if _, err := c.Get(ctx, id); !IsMiss(err) {
			t.Fatalf("expected miss after dropped fill, got %v", err)
		}
	})
}
