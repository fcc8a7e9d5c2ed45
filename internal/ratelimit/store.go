package ratelimit

import (
	"context"
	"time"
)

// Store is the counter backend for rate limiting.
type Store interface {
	// Record counts a request against key and returns the total inside
	// the current window, pruning expired entries.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
