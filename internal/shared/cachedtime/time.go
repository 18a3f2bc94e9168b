// Package cachedtime provides the time sources used for stale deadlines and item expiry.
package cachedtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultResolution is the refresh period of a Cached clock.
const DefaultResolution = 10 * time.Millisecond

// Clock is a source of wall-clock time.
type Clock interface {
	Now() time.Time
}

// Real reads time.Now on every call.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Cached serves a ticker-refreshed timestamp to avoid time.Now on hot paths.
// After ctx is done it falls back to time.Now.
type Cached struct {
	nowUnix atomic.Int64
	closed  atomic.Bool
}

func New(ctx context.Context, resolution time.Duration) *Cached {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	c := &Cached{}
	c.nowUnix.Store(time.Now().UnixNano())
	go c.run(ctx, resolution)
	return c
}

func (c *Cached) run(ctx context.Context, resolution time.Duration) {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.closed.Store(true)
			return
		case tt := <-ticker.C:
			c.nowUnix.Store(tt.UnixNano())
		}
	}
}

func (c *Cached) Now() time.Time {
	if c.closed.Load() {
		return time.Now()
	}
	return time.Unix(0, c.nowUnix.Load())
}

// Manual only moves when told to. Used by tests.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func (m *Manual) Set(now time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

var (
	_ Clock = Real{}
	_ Clock = (*Cached)(nil)
	_ Clock = (*Manual)(nil)
)
