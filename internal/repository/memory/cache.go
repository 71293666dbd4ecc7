package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/connect4-ai/internal/domain"
)

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// Cache is an in-process key-value store with per-key expiry. Expired
// entries are invisible to Get and removed by Prune.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}

	e := entry{value: s}
	if expiration > 0 {
		e.expiresAt = c.now().Add(expiration)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || (!e.expiresAt.IsZero() && c.now().After(e.expiresAt)) {
		return "", domain.ErrCacheMiss
	}
	return e.value, nil
}

func (c *Cache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Prune deletes expired entries and returns how many went.
func (c *Cache) Prune() int {
	now := c.now()
	removed := 0

	c.mu.Lock()
	for key, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}
