package ashkv

import (
	"github.com/Borislavv/go-ash-kv/model"
	"time"
)

// Push appends value to the named list, each slot expiring after ttl.
func (c *Client) Push(name string, value []byte, ttl time.Duration) bool {
	mustValidTTL("push", ttl)
	b := c.conn()
	if b == nil {
		return false
	}
	if _, err := b.lists.Push(name, value, ttl); err != nil {
		c.metrics.PushFailed()
		c.logger.Warn("push failed", "list", name, "err", err)
		return false
	}
	c.metrics.Pushed()
	return true
}

// Trim returns every live slot of the named list in slot order. The list is
// left as is: a second Trim sees the same slots plus anything pushed since.
// Failure yields nil, an empty list a non-nil empty Slots.
func (c *Client) Trim(name string) model.Slots {
	b := c.conn()
	if b == nil {
		return nil
	}
	slots, err := b.lists.Trim(name)
	if err != nil {
		c.logger.Warn("trim failed", "list", name, "err", err)
		return nil
	}
	return slots
}
