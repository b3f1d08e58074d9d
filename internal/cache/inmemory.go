package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	ExpiryDefaultInMemory = 30 * time.Minute
	cleanupInterval       = 10 * time.Minute
)

// InMemoryCache is a process-local cache backed by go-cache
type InMemoryCache struct {
	store *gocache.Cache
}

var (
	inMemoryInstance *InMemoryCache
	inMemoryOnce     sync.Once
)

// NewInMemoryCache creates a new in-memory cache
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		store: gocache.New(ExpiryDefaultInMemory, cleanupInterval),
	}
}

// GetInMemoryCache returns the shared in-memory cache instance
func GetInMemoryCache() *InMemoryCache {
	inMemoryOnce.Do(func() {
		inMemoryInstance = NewInMemoryCache()
	})
	return inMemoryInstance
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration <= 0 {
		expiration = ExpiryDefaultInMemory
	}
	c.store.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.store.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}
