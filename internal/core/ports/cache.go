package ports

import (
	"context"
	"time"
)

// Cache is a key/value store with per-entry expiry.
//
// Get reports a miss (nil, false, nil) for absent or expired keys; expired
// entries are purged on read. A non-nil error means the backend itself failed.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
