// Package spinlock implements a cache-resident mutual-exclusion flag: the lock is
// held while its key exists in the store. Waiting is a bounded busy-wait.
package spinlock

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-kv/internal/store"
	"time"
)

var heldValue = []byte("1")

type Lock struct {
	store store.Store
	key   string
	ttl   time.Duration // 0: held until released
	spin  Spinner
}

func New(s store.Store, key string, ttl time.Duration, spin Spinner) *Lock {
	return &Lock{store: s, key: key, ttl: ttl, spin: spin}
}

func (l *Lock) Key() string { return l.key }

// Held reports whether the lock key currently exists.
func (l *Lock) Held() (bool, error) {
	if _, err := l.store.Get(l.key); err != nil {
		if errors.Is(err, store.ErrMiss) {
			return false, nil
		}
		return false, fmt.Errorf("check lock %s: %w", l.key, err)
	}
	return true, nil
}

// Take writes the lock key whether or not it exists, so a lock left behind by
// a holder that died is taken over instead of blocking forever.
func (l *Lock) Take() error {
	if err := l.store.Set(l.key, heldValue, 0, l.ttl); err != nil {
		return fmt.Errorf("take lock %s: %w", l.key, err)
	}
	return nil
}

// WaitReleased polls until the lock key is gone or the spinner gives up.
// It doesn't take the lock.
func (l *Lock) WaitReleased() (attempts int, err error) {
	return l.spin.Spin(func() (bool, error) {
		held, err := l.Held()
		return !held, err
	})
}

// Release deletes the lock key unconditionally.
func (l *Lock) Release() error {
	if err := l.store.Delete(l.key); err != nil && !errors.Is(err, store.ErrMiss) {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	return nil
}
