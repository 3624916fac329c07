// Package ratelimit spaces outbound requests per host so homepage scrapes and
// article-body fetches don't hammer a single publisher.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type PerHost struct {
	mu       sync.Mutex
	interval time.Duration
	lastHit  map[string]time.Time
}

func NewPerHost(interval time.Duration) *PerHost {
	return &PerHost{
		interval: interval,
		lastHit:  make(map[string]time.Time),
	}
}

// Wait blocks until the host's minimum interval has elapsed or ctx is done.
func (l *PerHost) Wait(ctx context.Context, host string) error {
	if l.interval <= 0 {
		return ctx.Err()
	}

	l.mu.Lock()
	now := time.Now()
	next := l.lastHit[host].Add(l.interval)
	if next.Before(now) {
		next = now
	}
	l.lastHit[host] = next
	l.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
