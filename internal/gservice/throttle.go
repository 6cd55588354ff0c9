package gservice

import (
	"context"
	"sync"
	"time"
)

// callsPerSecond caps outbound Gmail calls process-wide to stay clear of
// API throttling.
const callsPerSecond = 2

// Throttle is a minimal leaky bucket: each Wait admits one call and
// delays it until the minimum interval since the previous call has
// passed.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewThrottle creates a throttle admitting perSecond calls per second.
func NewThrottle(perSecond int) *Throttle {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &Throttle{interval: time.Second / time.Duration(perSecond)}
}

// Wait blocks until the next call may proceed or the context ends.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	now := time.Now()
	next := t.last.Add(t.interval)
	if next.Before(now) {
		next = now
	}
	t.last = next
	t.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
