// Package list emulates an append-only list on a flat key-value store:
// an atomic counter hands out slot numbers and every value lives in its own key.
//
// Trim takes the list lock, pushes wait for it to be released. Pushes that
// already passed the lock check may still land while a trim reads. Taking the
// lock overwrites whatever is there, so a lock abandoned by a crashed trim is
// cleared by the next one.
package list

import (
	"cmp"
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-kv/internal/spinlock"
	"github.com/Borislavv/go-ash-kv/internal/store"
	"github.com/Borislavv/go-ash-kv/metrics"
	"github.com/Borislavv/go-ash-kv/model"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	ErrEmptyName     = errors.New("list: empty name")
	ErrIndexOverflow = errors.New("list: index exceeds max slots")
)

var firstIndex = []byte("1")

type Options struct {
	// LockRetries bounds a push waiting on a held list lock.
	LockRetries int
	// IncrementRetries bounds slot allocation under index creation races.
	IncrementRetries int
	// Delay between retries.
	Delay time.Duration
	// TrimSettle is slept after taking the lock, letting in-flight pushes land.
	TrimSettle time.Duration
	// LockTTL is the lock lease. 0 keeps the lock until released.
	LockTTL time.Duration
	// ReadConcurrency bounds parallel slot reads during a trim.
	ReadConcurrency int
	// MaxSlots is the largest index a trim agrees to read. 0 means no limit.
	MaxSlots uint64
}

type Lists struct {
	store   store.Store
	opts    Options
	metrics metrics.Metrics
	logger  *slog.Logger
}

// New expects s to apply the key prefix already.
func New(s store.Store, opts Options, m metrics.Metrics, logger *slog.Logger) *Lists {
	if m == nil {
		m = metrics.Noop{}
	}
	return &Lists{store: s, opts: opts, metrics: m, logger: logger}
}

// Push appends value and returns the slot number it was written to.
func (l *Lists) Push(name string, value []byte, ttl time.Duration) (uint64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}

	if attempts, err := l.lock(name).WaitReleased(); err != nil {
		if errors.Is(err, spinlock.ErrExhausted) {
			l.metrics.Exhausted(metrics.OpPushLock)
			l.logger.Error("list stays locked by a trim, push dropped", "list", name, "attempts", attempts)
		}
		return 0, fmt.Errorf("push %s: %w", name, err)
	}

	slot, err := l.nextIndex(name)
	if err != nil {
		return 0, fmt.Errorf("push %s: %w", name, err)
	}

	if err = l.store.Set(DataKey(name, slot), value, 0, ttl); err != nil {
		return slot, fmt.Errorf("push %s: write slot %d: %w", name, slot, err)
	}
	return slot, nil
}

// Trim returns every slot from 1 to the current index. Slots are not deleted
// and the index is not reset, a later trim reads the same range again.
func (l *Lists) Trim(name string) (model.Slots, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	lock := l.lock(name)
	if err := lock.Take(); err != nil {
		return nil, fmt.Errorf("trim %s: %w", name, err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			l.logger.Error("list lock left behind", "list", name, "err", err)
		}
	}()

	if l.opts.TrimSettle > 0 {
		time.Sleep(l.opts.TrimSettle)
	}

	top, err := l.index(name)
	if err != nil {
		return nil, fmt.Errorf("trim %s: %w", name, err)
	}
	if l.opts.MaxSlots > 0 && top > l.opts.MaxSlots {
		l.logger.Error("list index is out of range, trim refused", "list", name, "index", top, "max", l.opts.MaxSlots)
		return nil, fmt.Errorf("trim %s: %w: %d > %d", name, ErrIndexOverflow, top, l.opts.MaxSlots)
	}
	slots, err := l.read(name, top)
	if err != nil {
		return nil, fmt.Errorf("trim %s: %w", name, err)
	}

	l.metrics.Trimmed(len(slots))
	return slots, nil
}

// nextIndex increments the index key, creating it with add-if-absent on first use.
// Losing the creation race means another push just made it, so increment again.
func (l *Lists) nextIndex(name string) (uint64, error) {
	key := IndexKey(name)

	var slot uint64
	attempts, err := l.spinner(l.opts.IncrementRetries).Spin(func() (bool, error) {
		v, err := l.store.Increment(key, 1)
		if err == nil {
			slot = v
			return true, nil
		}
		if !errors.Is(err, store.ErrMiss) {
			return false, fmt.Errorf("increment %s: %w", key, err)
		}

		switch err = l.store.Add(key, firstIndex, 0, 0); {
		case err == nil:
			slot = 1
			return true, nil
		case errors.Is(err, store.ErrNotStored):
			return false, nil
		default:
			return false, fmt.Errorf("create %s: %w", key, err)
		}
	})
	if err != nil {
		if errors.Is(err, spinlock.ErrExhausted) {
			l.metrics.Exhausted(metrics.OpIndexIncr)
			l.logger.Error("can't increment list index", "key", key, "attempts", attempts)
		}
		return 0, err
	}
	return slot, nil
}

func (l *Lists) index(name string) (uint64, error) {
	raw, err := l.store.Get(IndexKey(name))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return 0, nil
		}
		return 0, fmt.Errorf("read index: %w", err)
	}
	top, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse index %q: %w", raw, err)
	}
	return top, nil
}

func (l *Lists) read(name string, top uint64) (model.Slots, error) {
	if top == 0 {
		return model.Slots{}, nil
	}

	// top is whatever the cache holds, so nothing is sized by it.
	var (
		mu    sync.Mutex
		slots = model.Slots{}
		g     errgroup.Group
	)
	g.SetLimit(max(l.opts.ReadConcurrency, 1))
	for i := uint64(1); i <= top; i++ {
		g.Go(func() error {
			v, err := l.store.Get(DataKey(name, i))
			if err != nil {
				if errors.Is(err, store.ErrMiss) {
					return nil
				}
				return fmt.Errorf("read slot %d: %w", i, err)
			}
			mu.Lock()
			slots = append(slots, model.Slot{Index: i, Value: v})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(slots, func(a, b model.Slot) int { return cmp.Compare(a.Index, b.Index) })
	return slots, nil
}

func (l *Lists) lock(name string) *spinlock.Lock {
	return spinlock.New(l.store, LockKey(name), l.opts.LockTTL, l.spinner(l.opts.LockRetries))
}

func (l *Lists) spinner(attempts int) spinlock.Spinner {
	return spinlock.Spinner{Attempts: attempts, Delay: l.opts.Delay, OnSpin: l.metrics.LockSpin}
}
