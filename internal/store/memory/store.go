// Package memory implements store.Store in-process. It follows memcached semantics
// for add/replace/incr and lazy TTL expiry, and backs tests and the memory:// backend.
package memory

import (
	"bytes"
	"github.com/Borislavv/go-ash-kv/internal/shared/cachedtime"
	"github.com/Borislavv/go-ash-kv/internal/store"
	"strconv"
	"time"
)

// Tunables.
const (
	NumOfShards = 256
	shardMask   = NumOfShards - 1
)

// Store is a sharded concurrent key-value store.
type Store struct {
	clock  cachedtime.Clock
	shards [NumOfShards]*Shard
}

func New(clock cachedtime.Clock) *Store {
	if clock == nil {
		clock = cachedtime.Real{}
	}
	s := &Store{clock: clock}
	for id := range s.shards {
		s.shards[id] = newShard()
	}
	return s
}

func (s *Store) Get(key string) ([]byte, error) {
	h := hash(key)
	e, ok := s.shard(h).peek(h, key, s.now())
	if !ok {
		return nil, store.ErrMiss
	}
	return bytes.Clone(e.value), nil
}

func (s *Store) Set(key string, value []byte, flags store.Flags, ttl time.Duration) error {
	h := hash(key)
	sh := s.shard(h)
	sh.Lock()
	sh.putUnlocked(h, s.newEntry(key, value, flags, ttl))
	sh.Unlock()
	return nil
}

func (s *Store) Add(key string, value []byte, flags store.Flags, ttl time.Duration) error {
	h := hash(key)
	sh := s.shard(h)
	sh.Lock()
	defer sh.Unlock()
	if _, found := sh.getUnlocked(h, key, s.now()); found {
		return store.ErrNotStored
	}
	sh.putUnlocked(h, s.newEntry(key, value, flags, ttl))
	return nil
}

func (s *Store) Replace(key string, value []byte, flags store.Flags, ttl time.Duration) error {
	h := hash(key)
	sh := s.shard(h)
	sh.Lock()
	defer sh.Unlock()
	if _, found := sh.getUnlocked(h, key, s.now()); !found {
		return store.ErrNotStored
	}
	sh.putUnlocked(h, s.newEntry(key, value, flags, ttl))
	return nil
}

func (s *Store) Delete(key string) error {
	h := hash(key)
	sh := s.shard(h)
	sh.Lock()
	defer sh.Unlock()
	if _, found := sh.getUnlocked(h, key, s.now()); !found {
		return store.ErrMiss
	}
	sh.removeUnlocked(h, key)
	return nil
}

// Increment adds by to a decimal value, wrapping at 64 bits like memcached.
// The item keeps its flags and expiry.
func (s *Store) Increment(key string, by uint64) (uint64, error) {
	h := hash(key)
	sh := s.shard(h)
	sh.Lock()
	defer sh.Unlock()
	e, found := sh.getUnlocked(h, key, s.now())
	if !found {
		return 0, store.ErrMiss
	}
	cur, err := strconv.ParseUint(string(bytes.TrimSpace(e.value)), 10, 64)
	if err != nil {
		return 0, store.ErrNotNumeric
	}
	next := cur + by
	sh.putUnlocked(h, &entry{
		key:       key,
		value:     strconv.AppendUint(nil, next, 10),
		flags:     e.flags,
		expiresAt: e.expiresAt,
	})
	return next, nil
}

func (s *Store) Flush() error {
	for _, sh := range s.shards {
		sh.clear()
	}
	return nil
}

func (s *Store) Ping() error { return nil }

// Len counts resident items, including expired ones not yet touched.
func (s *Store) Len() (n int64) {
	for _, sh := range s.shards {
		n += sh.Len()
	}
	return n
}

func (s *Store) Mem() (n int64) {
	for _, sh := range s.shards {
		n += sh.Mem()
	}
	return n
}

func (s *Store) shard(h uint64) *Shard { return s.shards[h&shardMask] }

func (s *Store) now() int64 { return s.clock.Now().UnixNano() }

func (s *Store) newEntry(key string, value []byte, flags store.Flags, ttl time.Duration) *entry {
	e := &entry{key: key, value: bytes.Clone(value), flags: flags}
	if ttl > 0 {
		e.expiresAt = s.clock.Now().Add(ttl).UnixNano()
	}
	return e
}

var (
	_ store.Store  = (*Store)(nil)
	_ store.Pinger = (*Store)(nil)
	_ store.Sizer  = (*Store)(nil)
)
