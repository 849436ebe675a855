package cache

import (
	"context"
	"sync"
	"time"
)

// entry is one cached body with its expiry deadline.
type entry struct {
	body      string
	expiresAt time.Time
}

// Memory is an in-process Cache. It is the default backend: a single
// instance of this service gets memoization for free, with no external
// moving parts. Expired entries are dropped lazily on read and swept
// whenever the map grows past sweepThreshold, so an abusive client
// cannot grow the map without bound.
type Memory struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]entry
}

const sweepThreshold = 4096

// NewMemory returns an in-memory cache whose entries live for ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl: ttl,
		m:   make(map[string]entry),
	}
}

func (c *Memory) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.m[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.m, key)
		return "", false
	}
	return e.body, true
}

func (c *Memory) Set(_ context.Context, key string, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.m) >= sweepThreshold {
		c.sweepLocked()
	}

	c.m[key] = entry{
		body:      body,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// sweepLocked drops every expired entry. Caller must hold mu.
func (c *Memory) sweepLocked() {
	now := time.Now()
	for key, e := range c.m {
		if now.After(e.expiresAt) {
			delete(c.m, key)
		}
	}
}
