package corpus

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachedLoader keeps the last non-empty corpus for a TTL. Concurrent misses share
// one underlying load. Returned slices are shared and must not be modified.
type CachedLoader struct {
	next Loader
	key  string
	ttl  time.Duration
	now  func() time.Time

	mu       sync.RWMutex
	records  []Record
	loadedAt time.Time

	group singleflight.Group
}

// NewCachedLoader wraps next. key identifies the source; a ttl of zero disables caching
// and every call goes to next.
func NewCachedLoader(next Loader, key string, ttl time.Duration) *CachedLoader {
	return &CachedLoader{next: next, key: key, ttl: ttl, now: time.Now}
}

// Load returns the cached corpus or loads it. Empty loads are not cached.
func (c *CachedLoader) Load(ctx context.Context) []Record {
	if c.ttl <= 0 {
		return c.next.Load(ctx)
	}

	c.mu.RLock()
	if c.records != nil && c.now().Sub(c.loadedAt) < c.ttl {
		records := c.records
		c.mu.RUnlock()
		return records
	}
	c.mu.RUnlock()

	// The shared load must not be cut short by whichever caller started it.
	loadCtx := context.WithoutCancel(ctx)
	v, _, _ := c.group.Do(c.key, func() (any, error) {
		records := c.next.Load(loadCtx)
		if len(records) > 0 {
			c.mu.Lock()
			c.records = records
			c.loadedAt = c.now()
			c.mu.Unlock()
		}
		return records, nil
	})
	return v.([]Record)
}

// Invalidate drops the cached corpus.
func (c *CachedLoader) Invalidate() {
	c.mu.Lock()
	c.records = nil
	c.mu.Unlock()
}
