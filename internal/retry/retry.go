package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy controls how delivery calls are retried.
type Policy struct {
	Attempts int
	Delay    time.Duration
	Backoff  bool // linear backoff: attempt * Delay
}

// Do runs fn until it succeeds, the attempts are exhausted, or ctx is done.
func Do(ctx context.Context, p Policy, fn func() error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt == p.Attempts {
			break
		}

		delay := p.Delay
		if p.Backoff {
			delay = time.Duration(attempt) * p.Delay
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", p.Attempts, lastErr)
}
