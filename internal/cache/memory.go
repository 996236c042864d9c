package cache

import (
	"sync"
	"time"
)

type entry struct {
	v   any
	exp time.Time
}

// TTL is a bounded in-process cache with per-entry expiration. Expired
// entries are treated as absent. Safe for concurrent use.
type TTL struct {
	mu  sync.RWMutex
	m   map[string]entry
	max int
}

// NewTTL caps the cache at max entries; max <= 0 means unbounded.
func NewTTL(max int) *TTL {
	return &TTL{m: make(map[string]entry), max: max}
}

func (c *TTL) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.v, true
}

func (c *TTL) Set(key string, v any, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.max > 0 && len(c.m) >= c.max {
		if _, exists := c.m[key]; !exists {
			c.evictLocked()
		}
	}
	c.m[key] = entry{v: v, exp: exp}
}

// evictLocked drops expired entries first, then an arbitrary entry if the
// cache is still full. Callers hold the write lock.
func (c *TTL) evictLocked() {
	now := time.Now()
	for k, e := range c.m {
		if !e.exp.IsZero() && now.After(e.exp) {
			delete(c.m, k)
		}
	}
	if c.max > 0 && len(c.m) >= c.max {
		for k := range c.m {
			delete(c.m, k)
			break
		}
	}
}

// Len reports the current entry count, including not-yet-purged expired
// entries.
func (c *TTL) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
