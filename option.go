package ashkv

import (
	"github.com/Borislavv/go-ash-kv/internal/shared/cachedtime"
	"github.com/Borislavv/go-ash-kv/metrics"
)

type Option func(c *Client)

// WithDialer replaces how a host string becomes a store connection.
func WithDialer(d Dialer) Option {
	return func(c *Client) { c.dial = d }
}

// WithClock sets the clock that stale deadlines and the embedded store read.
func WithClock(clock cachedtime.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithMetrics adds hooks next to the built-in telemetry counters.
func WithMetrics(m metrics.Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.hooks = append(c.hooks, m)
		}
	}
}
