package cache

import (
	"context"
	"time"
)

// Cache là contract của cache layer; values được serialize JSON.
// Get trả found=false khi miss, dest giữ nguyên.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
