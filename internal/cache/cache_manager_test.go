package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) *CacheManager {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheManager(client)
}

func TestCacheManagerPrefixIsolation(t *testing.T) {
	cm := newTestManager(t)
	ctx := context.Background()

	if err := cm.Module.Set(ctx, "visible:m1", "module payload", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cm.Leaderboard.Set(ctx, "top:10", "leaderboard payload", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Helpers never see each other's keys.
	var got string
	if err := cm.Leaderboard.Get(ctx, "visible:m1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("cross-prefix Get() error = %v, want ErrCacheNotFound", err)
	}
	if err := cm.Module.Get(ctx, "visible:m1", &got); err != nil || got != "module payload" {
		t.Errorf("Module Get() = %q, %v", got, err)
	}
}

func TestCacheManagerModuleInvalidation(t *testing.T) {
	cm := newTestManager(t)
	ctx := context.Background()

	for _, key := range []string{"visible:m1", "visible:m2"} {
		if err := cm.Module.Set(ctx, key, "payload", time.Minute); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}
	if err := cm.Leaderboard.Set(ctx, "top:10", "payload", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	SafeInvalidatePattern(ctx, cm.Module, "visible:*")

	var got string
	for _, key := range []string{"visible:m1", "visible:m2"} {
		if err := cm.Module.Get(ctx, key, &got); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("Get(%s) after invalidation error = %v, want ErrCacheNotFound", key, err)
		}
	}
	if err := cm.Leaderboard.Get(ctx, "top:10", &got); err != nil {
		t.Errorf("leaderboard entry lost to module invalidation: %v", err)
	}

	// Targeted deletes only touch the named key.
	if err := cm.Module.Set(ctx, "visible:m3", "payload", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	SafeDelete(ctx, cm.Module, "visible:m3")
	if err := cm.Module.Get(ctx, "visible:m3", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrCacheNotFound", err)
	}
}
