// Package ashkv fronts a memcached-style server with a prefixed key space,
// soft expiration and cache-resident append-only lists.
//
// Every failure is reported as a false or empty result and logged. Only a
// malformed ttl panics (see ConfigError).
package ashkv

import (
	"context"
	"errors"
	"github.com/Borislavv/go-ash-kv/config"
	"github.com/Borislavv/go-ash-kv/internal/list"
	"github.com/Borislavv/go-ash-kv/internal/shared/cachedtime"
	"github.com/Borislavv/go-ash-kv/internal/staleq"
	"github.com/Borislavv/go-ash-kv/internal/store"
	"github.com/Borislavv/go-ash-kv/internal/store/memcached"
	"github.com/Borislavv/go-ash-kv/internal/store/memory"
	"github.com/Borislavv/go-ash-kv/internal/telemetry"
	"github.com/Borislavv/go-ash-kv/metrics"
	"log/slog"
	"net"
	"strconv"
	"sync"
)

// Dialer opens the backing store for a "hostname:port" address or config.MemoryHost.
type Dialer func(addr string) (store.Store, error)

type Client struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Facade
	logger *slog.Logger

	dial     Dialer
	clock    cachedtime.Clock
	hooks    []metrics.Metrics
	counters *telemetry.Counters
	metrics  metrics.Metrics

	mu        sync.Mutex
	state     ConnState
	backend   *backend
	telemeter telemetry.Logger
	closed    bool
}

// backend is everything that exists only after a successful connect.
type backend struct {
	raw   store.Store
	kv    *store.Prefixed
	queue *staleq.Queue
	lists *list.Lists
}

// New builds a handle without touching the network; the first operation connects.
func New(ctx context.Context, cfg *config.Facade, logger *slog.Logger, opts ...Option) *Client {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.AdjustConfig()
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &Client{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		counters: telemetry.NewCounters(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.clock == nil {
		if cfg.CacheTimeEnabled {
			c.clock = cachedtime.New(ctx, cachedtime.DefaultResolution)
		} else {
			c.clock = cachedtime.Real{}
		}
	}
	if c.dial == nil {
		c.dial = c.defaultDial
	}
	c.metrics = append(metrics.Multi{c.counters}, c.hooks...)
	return c
}

// Connect dials host, or the configured host when empty. The outcome is
// memoized: later calls return it without dialing again, whatever host they pass.
func (c *Client) Connect(host string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(host)
}

func (c *Client) connectLocked(host string) bool {
	switch c.state {
	case StateConnected:
		return true
	case StateFailed:
		return false
	}

	if host == "" {
		host = c.cfg.Host
	}
	addr := c.address(host)

	raw, err := c.dial(addr)
	if err != nil {
		c.state = StateFailed
		c.logger.Error("can't connect to cache server, cache disabled", "addr", addr, "err", err)
		return false
	}

	kv := store.NewPrefixed(c.cfg.KeyPrefix, raw)
	c.backend = &backend{
		raw:   raw,
		kv:    kv,
		queue: staleq.New(kv, c.clock, c.logger),
		lists: list.New(kv, list.Options{
			LockRetries:      c.cfg.Lists.LockRetries,
			IncrementRetries: c.cfg.Lists.IncrementRetries,
			Delay:            c.cfg.Lists.RetryDelay,
			TrimSettle:       c.cfg.Lists.TrimSettle,
			LockTTL:          c.cfg.Lists.LockTTL,
			ReadConcurrency:  c.cfg.Lists.TrimReadConcurrency,
			MaxSlots:         c.cfg.Lists.TrimMaxSlots,
		}, c.metrics, c.logger),
	}
	if c.cfg.Telemetry.Enabled() {
		c.telemeter = telemetry.New(c.ctx, c.logger, c.counters, raw, c.cfg.Telemetry.Interval)
	}
	c.state = StateConnected
	c.logger.Info("connected to cache server", "addr", addr, "prefix", c.cfg.KeyPrefix)
	return true
}

// State reports the connection state without dialing.
func (c *Client) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops background work. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.cancel()
	if c.telemeter != nil {
		return c.telemeter.Close()
	}
	return nil
}

// Snapshot holds cumulative operation counters.
type Snapshot = telemetry.Snapshot

// Stats returns the counters accumulated since New.
func (c *Client) Stats() Snapshot {
	return c.counters.Snapshot()
}

// conn connects on first use and returns nil once connecting has failed.
func (c *Client) conn() *backend {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connectLocked("") {
		return nil
	}
	return c.backend
}

func (c *Client) address(host string) string {
	if host == config.MemoryHost {
		return host
	}
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(c.cfg.DefaultPort))
}

func (c *Client) defaultDial(addr string) (store.Store, error) {
	if addr == config.MemoryHost {
		return memory.New(c.clock), nil
	}
	opts := memcached.Options{
		Timeout:      c.cfg.Timeout,
		MaxIdleConns: c.cfg.MaxIdleConns,
	}
	if c.cfg.Compression.Enabled() {
		opts.CompressionLevel = c.cfg.Compression.Level
	}
	s, err := memcached.Dial(addr, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) flags(compress bool) store.Flags {
	if compress && c.cfg.Compression.Enabled() {
		return store.FlagCompressed
	}
	return 0
}

func isMiss(err error) bool {
	return errors.Is(err, store.ErrMiss) || errors.Is(err, store.ErrNotStored)
}
