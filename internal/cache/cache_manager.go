package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// CacheManager bundles the per-domain cache helpers.
type CacheManager struct {
	Leaderboard *CacheHelper
	Stats       *CacheHelper
	Module      *CacheHelper
}

// NewCacheManager creates cache helpers for each domain. A nil client yields
// helpers that degrade gracefully to pass-through behavior.
func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		Leaderboard: NewCacheHelper(client, LeaderboardCacheConfig.Prefix),
		Stats:       NewCacheHelper(client, StatsCacheConfig.Prefix),
		Module:      NewCacheHelper(client, ModuleCacheConfig.Prefix),
	}
}

// SafeInvalidatePattern invalidates a cache pattern, logging failures instead
// of surfacing them to the caller.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging failures instead of surfacing them.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}
