// Package store defines the boundary between the facade and a memcached-style
// key-value server. Implementations must be safe for concurrent use.
package store

import (
	"errors"
	"time"
)

var (
	// ErrMiss is returned by Get, Delete and Increment when the key is absent.
	ErrMiss = errors.New("store: cache miss")
	// ErrNotStored is returned by Add when the key exists and by Replace when it doesn't.
	ErrNotStored = errors.New("store: item not stored")
	// ErrNotNumeric is returned by Increment when the stored value isn't a decimal integer.
	ErrNotNumeric = errors.New("store: value is not numeric")
)

// Flags is an opaque per-item bit set passed through to the server.
type Flags uint32

// FlagCompressed marks an item whose value is stored compressed.
const FlagCompressed Flags = 1 << 1

func (f Flags) Compressed() bool { return f&FlagCompressed != 0 }

// Store is a raw key-value client against one backing server.
//
// TTLs are whole seconds; 0 means the item never expires.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, flags Flags, ttl time.Duration) error
	Add(key string, value []byte, flags Flags, ttl time.Duration) error
	Replace(key string, value []byte, flags Flags, ttl time.Duration) error
	Delete(key string) error
	Increment(key string, by uint64) (uint64, error)
	Flush() error
}

// Pinger is implemented by stores able to verify the server is reachable.
type Pinger interface {
	Ping() error
}

// Sizer is implemented by stores able to report resident size (embedded store only).
type Sizer interface {
	Len() int64
	Mem() int64
}
