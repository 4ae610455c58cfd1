package cache

import (
	"context"
	"log/slog"
)

// SafeDelete deletes cache keys, logging instead of propagating failures.
// A stale cache entry is preferable to failing the write that invalidated
// it.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}
