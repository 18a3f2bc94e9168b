package ashkv

import "time"

// ScheduleExpiry makes key read as missing once delay has passed. An earlier
// deadline already scheduled for key is kept.
func (c *Client) ScheduleExpiry(key string, delay time.Duration) bool {
	b := c.conn()
	if b == nil {
		return false
	}
	written, err := b.queue.Schedule(key, delay)
	if err != nil {
		c.logger.Error("can't schedule expiry", "key", key, "err", err)
		return false
	}
	if written {
		c.metrics.Scheduled()
	}
	return true
}

// ListScheduledExpirations returns every pending deadline as unix seconds.
func (c *Client) ListScheduledExpirations() (map[string]int64, bool) {
	b := c.conn()
	if b == nil {
		return nil, false
	}
	deadlines, err := b.queue.List()
	if err != nil {
		c.logger.Error("can't read expiry schedule", "err", err)
		return nil, false
	}
	return deadlines, true
}

// PurgeExpirationSchedule forgets every deadline; the entries stay.
func (c *Client) PurgeExpirationSchedule() bool {
	b := c.conn()
	if b == nil {
		return false
	}
	if err := b.queue.Purge(); err != nil {
		c.logger.Error("can't purge expiry schedule", "err", err)
		return false
	}
	return true
}
