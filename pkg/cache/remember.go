package cache

import (
	"context"
	"log"
	"time"
)

// Remember là cache-aside: trả giá trị trong cache nếu có, nếu không gọi load rồi lưu lại.
// Lỗi của cache chỉ được log, request vẫn đi tiếp xuống load.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[CACHE] GET %s failed: %v", key, err)
	}
	if found && err == nil {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Printf("[CACHE] SET %s failed: %v", key, err)
	}
	return value, nil
}
