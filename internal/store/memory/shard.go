package memory

import (
	"sync"
	"sync/atomic"
)

// Shard is an independent segment of the store. Entries are bucketed by hash and
// the full key is compared on lookup, so hash collisions only share a bucket.
type Shard struct {
	sync.RWMutex
	items map[uint64][]*entry

	mem int64 // atomic
	len int64 // atomic
}

func newShard() *Shard {
	return &Shard{items: make(map[uint64][]*entry)}
}

func (sh *Shard) Len() int64 { return atomic.LoadInt64(&sh.len) }
func (sh *Shard) Mem() int64 { return atomic.LoadInt64(&sh.mem) }

// getUnlocked returns the live entry for key, dropping it if it has expired.
func (sh *Shard) getUnlocked(h uint64, key string, now int64) (*entry, bool) {
	for _, e := range sh.items[h] {
		if e.key != key {
			continue
		}
		if e.expired(now) {
			sh.removeUnlocked(h, key)
			return nil, false
		}
		return e, true
	}
	return nil, false
}

// peek reads under the shared lock and never mutates; expired entries read as absent.
func (sh *Shard) peek(h uint64, key string, now int64) (*entry, bool) {
	sh.RLock()
	defer sh.RUnlock()
	for _, e := range sh.items[h] {
		if e.key == key && !e.expired(now) {
			return e, true
		}
	}
	return nil, false
}

// putUnlocked inserts or replaces the entry with the same key.
func (sh *Shard) putUnlocked(h uint64, in *entry) {
	bucket := sh.items[h]
	for i, e := range bucket {
		if e.key == in.key {
			bucket[i] = in
			atomic.AddInt64(&sh.mem, in.weight()-e.weight())
			return
		}
	}
	sh.items[h] = append(bucket, in)
	atomic.AddInt64(&sh.mem, in.weight())
	atomic.AddInt64(&sh.len, 1)
}

func (sh *Shard) removeUnlocked(h uint64, key string) (hit bool) {
	bucket := sh.items[h]
	for i, e := range bucket {
		if e.key != key {
			continue
		}
		if len(bucket) == 1 {
			delete(sh.items, h)
		} else {
			sh.items[h] = append(bucket[:i:i], bucket[i+1:]...)
		}
		atomic.AddInt64(&sh.mem, -e.weight())
		atomic.AddInt64(&sh.len, -1)
		return true
	}
	return false
}

func (sh *Shard) clear() {
	sh.Lock()
	sh.items = make(map[uint64][]*entry)
	atomic.StoreInt64(&sh.len, 0)
	atomic.StoreInt64(&sh.mem, 0)
	sh.Unlock()
}
