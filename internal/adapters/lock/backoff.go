package lock

import (
	"context"
	"math/rand"
	"time"
)

// Default retry timing while waiting for a held lock.
const (
	DefaultBackoffInitial = 25 * time.Millisecond
	DefaultBackoffMax     = 500 * time.Millisecond
)

// backoff implements exponential backoff with jitter.
type backoff struct {
	max     time.Duration
	current time.Duration
}

// newBackoff creates a new backoff with the given initial and max durations.
func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{
		max:     max,
		current: initial,
	}
}

// Wait sleeps for the current backoff duration, capped at the time left
// before deadline, and increases it. Returns ctx.Err() if ctx is done first.
func (b *backoff) Wait(ctx context.Context, deadline time.Time) error {
	// Add jitter: ±20%
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	sleep := time.Duration(float64(b.current) + jitter)
	if left := time.Until(deadline); left < sleep {
		sleep = max(left, 0)
	}

	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	// Increase for next time
	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return nil
}
