// Package staleq keeps the soft-expiration queue: a single cache-resident map of
// key -> unix deadline. A read past the deadline deletes the entry and reports it stale.
//
// The map is read-modify-written without CAS, so concurrent schedulers may
// overwrite each other. That is accepted: bookkeeping is best-effort.
package staleq

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-kv/internal/shared/cachedtime"
	"github.com/Borislavv/go-ash-kv/internal/store"
	"log/slog"
	"time"
)

// MapKey is the logical key of the deadline map. Prefixed, it yields <prefix>__CACHE__.
const MapKey = "__CACHE__"

type Queue struct {
	store  store.Store
	clock  cachedtime.Clock
	logger *slog.Logger
}

// New expects s to apply the key prefix already.
func New(s store.Store, clock cachedtime.Clock, logger *slog.Logger) *Queue {
	return &Queue{store: s, clock: clock, logger: logger}
}

// Schedule marks key stale after delay. An existing deadline is only ever
// moved earlier, never later. Reports whether the map was written.
func (q *Queue) Schedule(key string, delay time.Duration) (bool, error) {
	deadlines, err := q.load()
	if err != nil {
		return false, err
	}
	deadline := q.clock.Now().Unix() + int64(delay/time.Second)
	if cur, found := deadlines[key]; found && deadline >= cur {
		return false, nil
	}
	deadlines[key] = deadline
	if err = q.save(deadlines); err != nil {
		return false, err
	}
	return true, nil
}

// IsStale reports whether key is past its deadline. When it is, the deadline is
// dropped and the entry itself is deleted, so only call it on a read path that
// will treat the result as a miss.
func (q *Queue) IsStale(key string) (bool, error) {
	deadlines, err := q.load()
	if err != nil {
		return false, err
	}
	deadline, found := deadlines[key]
	if !found || deadline > q.clock.Now().Unix() {
		return false, nil
	}

	delete(deadlines, key)
	if err = q.save(deadlines); err != nil {
		return false, err
	}
	if err = q.store.Delete(key); err != nil && !errors.Is(err, store.ErrMiss) {
		return true, fmt.Errorf("delete stale %s: %w", key, err)
	}
	return true, nil
}

// Purge forgets every deadline. Entries themselves are kept.
func (q *Queue) Purge() error {
	if err := q.store.Delete(MapKey); err != nil && !errors.Is(err, store.ErrMiss) {
		return fmt.Errorf("purge stale map: %w", err)
	}
	return nil
}

// List returns the raw deadline map (unix seconds).
func (q *Queue) List() (map[string]int64, error) {
	return q.load()
}

func (q *Queue) load() (map[string]int64, error) {
	raw, err := q.store.Get(MapKey)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return make(map[string]int64), nil
		}
		return nil, fmt.Errorf("read stale map: %w", err)
	}

	deadlines := make(map[string]int64)
	if err = json.Unmarshal(raw, &deadlines); err != nil {
		q.logger.Warn("stale map is corrupt, starting over", "err", err)
		return make(map[string]int64), nil
	}
	if deadlines == nil { // stored as JSON null
		deadlines = make(map[string]int64)
	}
	return deadlines, nil
}

func (q *Queue) save(deadlines map[string]int64) error {
	raw, err := json.Marshal(deadlines)
	if err != nil {
		return fmt.Errorf("encode stale map: %w", err)
	}
	if err = q.store.Set(MapKey, raw, 0, 0); err != nil {
		return fmt.Errorf("write stale map: %w", err)
	}
	return nil
}
