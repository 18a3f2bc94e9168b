package ashkv

import "time"

// Get returns the value stored under key. With soft expiration on, a key past
// its scheduled deadline is deleted and reported as a miss.
func (c *Client) Get(key string) ([]byte, bool) {
	b := c.conn()
	if b == nil {
		return nil, false
	}

	if c.cfg.SoftExpiration {
		stale, err := b.queue.IsStale(key)
		if err != nil {
			c.logger.Warn("can't check stale deadline", "key", key, "err", err)
		}
		if stale {
			c.metrics.StaleEvicted()
			c.metrics.Miss()
			return nil, false
		}
	}

	v, err := b.kv.Get(key)
	if err != nil {
		if !isMiss(err) {
			c.logger.Error("get failed", "key", key, "err", err)
		}
		c.metrics.Miss()
		return nil, false
	}
	c.metrics.Hit()
	return v, true
}

// Set stores value unconditionally. A ttl of 0 never expires.
func (c *Client) Set(key string, value []byte, ttl time.Duration, compress bool) bool {
	mustValidTTL("set", ttl)
	b := c.conn()
	if b == nil {
		return false
	}
	return c.report("set", key, b.kv.Set(key, value, c.flags(compress), ttl))
}

// Add stores value only if key is absent.
func (c *Client) Add(key string, value []byte, ttl time.Duration, compress bool) bool {
	mustValidTTL("add", ttl)
	b := c.conn()
	if b == nil {
		return false
	}
	return c.report("add", key, b.kv.Add(key, value, c.flags(compress), ttl))
}

// Replace stores value only if key is present.
func (c *Client) Replace(key string, value []byte, ttl time.Duration, compress bool) bool {
	mustValidTTL("replace", ttl)
	b := c.conn()
	if b == nil {
		return false
	}
	return c.report("replace", key, b.kv.Replace(key, value, c.flags(compress), ttl))
}

func (c *Client) Delete(key string) bool {
	b := c.conn()
	if b == nil {
		return false
	}
	return c.report("delete", key, b.kv.Delete(key))
}

// Increment adds by to a decimal counter and returns the new value.
// A missing key is not created.
func (c *Client) Increment(key string, by uint64) (uint64, bool) {
	b := c.conn()
	if b == nil {
		return 0, false
	}
	v, err := b.kv.Increment(key, by)
	if !c.report("increment", key, err) {
		return 0, false
	}
	return v, true
}

// Flush drops every item on the server, other prefixes included.
func (c *Client) Flush() bool {
	b := c.conn()
	if b == nil {
		return false
	}
	return c.report("flush", "", b.raw.Flush())
}

// report logs unexpected errors; misses and refused conditional writes are quiet.
func (c *Client) report(op, key string, err error) bool {
	if err == nil {
		return true
	}
	if !isMiss(err) {
		c.logger.Error(op+" failed", "key", key, "err", err)
	}
	return false
}
