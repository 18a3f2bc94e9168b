package telemetry

import (
	"github.com/Borislavv/go-ash-kv/metrics"
	"sync/atomic"
)

// Counters is the always-on metrics.Metrics backing the periodic logs.
type Counters struct {
	hits         atomic.Int64
	misses       atomic.Int64
	staleEvicted atomic.Int64
	scheduled    atomic.Int64
	lockSpins    atomic.Int64
	pushLockOut  atomic.Int64 // push gave up waiting for a trim
	indexLockOut atomic.Int64 // slot allocation gave up
	pushed       atomic.Int64
	pushFailed   atomic.Int64
	trims        atomic.Int64
	trimmedSlots atomic.Int64
}

func NewCounters() *Counters { return &Counters{} }

func (c *Counters) Hit()          { c.hits.Add(1) }
func (c *Counters) Miss()         { c.misses.Add(1) }
func (c *Counters) StaleEvicted() { c.staleEvicted.Add(1) }
func (c *Counters) Scheduled()    { c.scheduled.Add(1) }
func (c *Counters) LockSpin()     { c.lockSpins.Add(1) }
func (c *Counters) Pushed()       { c.pushed.Add(1) }
func (c *Counters) PushFailed()   { c.pushFailed.Add(1) }

func (c *Counters) Exhausted(op metrics.Op) {
	switch op {
	case metrics.OpPushLock:
		c.pushLockOut.Add(1)
	case metrics.OpIndexIncr:
		c.indexLockOut.Add(1)
	}
}

func (c *Counters) Trimmed(slots int) {
	c.trims.Add(1)
	c.trimmedSlots.Add(int64(slots))
}

// Snapshot holds cumulative counters (monotonic).
type Snapshot struct {
	Hits         uint64
	Misses       uint64
	StaleEvicted uint64
	Scheduled    uint64
	LockSpins    uint64
	PushLockOut  uint64
	IndexLockOut uint64
	Pushed       uint64
	PushFailed   uint64
	Trims        uint64
	TrimmedSlots uint64
}

func (c *Counters) Snapshot() Snapshot {
	load := func(v *atomic.Int64) uint64 { return uint64(max(v.Load(), 0)) }
	return Snapshot{
		Hits:         load(&c.hits),
		Misses:       load(&c.misses),
		StaleEvicted: load(&c.staleEvicted),
		Scheduled:    load(&c.scheduled),
		LockSpins:    load(&c.lockSpins),
		PushLockOut:  load(&c.pushLockOut),
		IndexLockOut: load(&c.indexLockOut),
		Pushed:       load(&c.pushed),
		PushFailed:   load(&c.pushFailed),
		Trims:        load(&c.trims),
		TrimmedSlots: load(&c.trimmedSlots),
	}
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur Snapshot) Snapshot {
	return Snapshot{
		Hits:         delta(prev.Hits, cur.Hits),
		Misses:       delta(prev.Misses, cur.Misses),
		StaleEvicted: delta(prev.StaleEvicted, cur.StaleEvicted),
		Scheduled:    delta(prev.Scheduled, cur.Scheduled),
		LockSpins:    delta(prev.LockSpins, cur.LockSpins),
		PushLockOut:  delta(prev.PushLockOut, cur.PushLockOut),
		IndexLockOut: delta(prev.IndexLockOut, cur.IndexLockOut),
		Pushed:       delta(prev.Pushed, cur.Pushed),
		PushFailed:   delta(prev.PushFailed, cur.PushFailed),
		Trims:        delta(prev.Trims, cur.Trims),
		TrimmedSlots: delta(prev.TrimmedSlots, cur.TrimmedSlots),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}

var _ metrics.Metrics = (*Counters)(nil)
