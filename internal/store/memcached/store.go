// Package memcached adapts github.com/bradfitz/gomemcache to store.Store.
package memcached

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-kv/internal/store"
	"github.com/bradfitz/gomemcache/memcache"
	"strings"
	"time"
)

// relativeTTLLimit is the largest expiration memcached reads as relative seconds;
// anything above is taken as an absolute unix timestamp.
const relativeTTLLimit = 30 * 24 * time.Hour

type Options struct {
	Timeout      time.Duration
	MaxIdleConns int
	// CompressionLevel is a compress/zlib level applied to items written with
	// store.FlagCompressed.
	CompressionLevel int
}

type Store struct {
	client *memcache.Client
	level  int
}

// Dial builds a client for addr ("host:port") and checks the server answers.
func Dial(addr string, opts Options) (*Store, error) {
	client := memcache.New(addr)
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}
	if opts.MaxIdleConns > 0 {
		client.MaxIdleConns = opts.MaxIdleConns
	}
	s := &Store{client: client, level: opts.CompressionLevel}
	if err := s.Ping(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return s, nil
}

func (s *Store) Ping() error { return s.client.Ping() }

func (s *Store) Get(key string) ([]byte, error) {
	item, err := s.client.Get(key)
	if err != nil {
		return nil, mapErr(err)
	}
	if store.Flags(item.Flags).Compressed() {
		return decompress(item.Value)
	}
	return item.Value, nil
}

func (s *Store) Set(key string, value []byte, flags store.Flags, ttl time.Duration) error {
	item, err := s.item(key, value, flags, ttl)
	if err != nil {
		return err
	}
	return mapErr(s.client.Set(item))
}

func (s *Store) Add(key string, value []byte, flags store.Flags, ttl time.Duration) error {
	item, err := s.item(key, value, flags, ttl)
	if err != nil {
		return err
	}
	return mapErr(s.client.Add(item))
}

func (s *Store) Replace(key string, value []byte, flags store.Flags, ttl time.Duration) error {
	item, err := s.item(key, value, flags, ttl)
	if err != nil {
		return err
	}
	return mapErr(s.client.Replace(item))
}

func (s *Store) Delete(key string) error { return mapErr(s.client.Delete(key)) }

func (s *Store) Increment(key string, by uint64) (uint64, error) {
	v, err := s.client.Increment(key, by)
	if err != nil {
		return 0, mapErr(err)
	}
	return v, nil
}

func (s *Store) Flush() error { return mapErr(s.client.FlushAll()) }

func (s *Store) item(key string, value []byte, flags store.Flags, ttl time.Duration) (*memcache.Item, error) {
	if flags.Compressed() {
		packed, err := compress(s.level, value)
		if err != nil {
			return nil, err
		}
		value = packed
	}
	return &memcache.Item{
		Key:        key,
		Value:      value,
		Flags:      uint32(flags),
		Expiration: expiration(ttl, time.Now()),
	}, nil
}

func expiration(ttl time.Duration, now time.Time) int32 {
	if ttl <= 0 {
		return 0
	}
	if ttl > relativeTTLLimit {
		return int32(now.Add(ttl).Unix())
	}
	return int32(ttl / time.Second)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, memcache.ErrCacheMiss):
		return store.ErrMiss
	case errors.Is(err, memcache.ErrNotStored):
		return store.ErrNotStored
	case strings.Contains(err.Error(), "non-numeric"):
		return fmt.Errorf("%w: %v", store.ErrNotNumeric, err)
	default:
		return err
	}
}

var (
	_ store.Store  = (*Store)(nil)
	_ store.Pinger = (*Store)(nil)
)
