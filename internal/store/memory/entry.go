package memory

import (
	"github.com/Borislavv/go-ash-kv/internal/store"
	"github.com/zeebo/xxh3"
	"unsafe"
)

type entry struct {
	key       string
	value     []byte
	flags     store.Flags
	expiresAt int64 // unix nano, 0 = never
}

func (e *entry) expired(now int64) bool {
	return e.expiresAt != 0 && e.expiresAt <= now
}

// weight is the approximate resident size in bytes.
func (e *entry) weight() int64 {
	return int64(len(e.key) + len(e.value) + int(unsafe.Sizeof(*e)))
}

func hash(key string) uint64 {
	return xxh3.HashString(key)
}
