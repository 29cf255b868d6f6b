package ratelimit

import (
	"context"
	"time"
)

// Store records requests in sliding windows.
type Store interface {
	// Record adds a request under key and returns how many fall inside window.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
