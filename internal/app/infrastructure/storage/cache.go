package storage

import (
	"github.com/maypok86/otter/v2"
	"sync"
	"time"
)

// Cache is a bounded string-keyed cache whose entries expire after ttl
// without access.
type Cache[T any] struct {
	mu    sync.Mutex
	outer *otter.Cache[string, T]
}

func NewCache[T any](capacity int, ttl time.Duration) *Cache[T] {
	opts := &otter.Options[string, T]{
		MaximumSize: capacity,
	}
	if ttl > 0 {
		opts.ExpiryCalculator = otter.ExpiryAccessing[string, T](ttl)
	}

	return &Cache[T]{outer: otter.Must(opts)}
}

// GetOrCreate returns the cached value for key, storing create() first when
// it is missing. create runs at most once per missing key.
func (c *Cache[T]) GetOrCreate(key string, create func() T) T {
	if v, ok := c.outer.GetIfPresent(key); ok {
		return v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.outer.GetIfPresent(key); ok {
		return v
	}
	v := create()
	c.outer.Set(key, v)
	return v
}
