// Package cache keeps fetched page bodies in memory for the lifetime of a run,
// so an article page pulled for date extraction is downloaded at most once.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	body      string
	expiresAt time.Time
}

type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	pages map[string]entry
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:   ttl,
		pages: make(map[string]entry),
	}
}

func (c *Cache) Set(url, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pages[url] = entry{
		body:      body,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *Cache) Get(url string) (string, bool) {
	c.mu.RLock()
	e, ok := c.pages[url]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.pages, url)
		c.mu.Unlock()
		return "", false
	}
	return e.body, true
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}
