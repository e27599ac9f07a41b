package cache

import (
	"context"
	"time"
)

// Cache is the response-cache contract: successful page responses are
// stored for a revalidation window, keyed by route. The aggregation core
// never touches this; it recomputes on every miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
