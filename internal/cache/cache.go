package cache

import (
	"context"
	"time"
)

// Cache defines the caching contract used by read-heavy services
type Cache interface {
	// Get retrieves a value by key
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value with an expiration
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete removes a value by key
	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes all values whose key starts with the prefix
	DeleteByPrefix(ctx context.Context, prefix string)
}

// UnmarshalCacheValue attempts to convert a cache value to the specified
// type. Returns the typed value and true if successful.
func UnmarshalCacheValue[T any](value interface{}) (*T, bool) {
	if value == nil {
		return nil, false
	}
	if typed, ok := value.(*T); ok {
		return typed, true
	}
	return nil, false
}
