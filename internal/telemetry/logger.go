package telemetry

import (
	"context"
	"github.com/Borislavv/go-ash-kv/internal/shared/bytes"
	"github.com/Borislavv/go-ash-kv/internal/store"
	"log/slog"
	"sync"
	"time"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

// Logs periodically reports per-interval counter deltas.
type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *slog.Logger
	counters *Counters
	store    store.Store
	interval time.Duration
	done     sync.WaitGroup
}

// New starts the reporter; interval <= 0 disables it.
// When s implements store.Sizer its occupancy is reported too.
func New(ctx context.Context, logger *slog.Logger, counters *Counters, s store.Store, interval time.Duration) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		counters: counters,
		store:    s,
		interval: interval,
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

// Close stops the loop and waits for it to exit.
func (l *Logs) Close() error {
	l.cancel()
	l.done.Wait()
	return nil
}

func (l *Logs) run() *Logs {
	if l.interval > 0 {
		prev := l.counters.Snapshot()
		l.done.Go(func() { l.loop(prev) })
	}
	return l
}

func (l *Logs) loop(prev Snapshot) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			cur := l.counters.Snapshot()
			l.report(deltaSnapshot(prev, cur))
			prev = cur
		}
	}
}

func (l *Logs) report(d Snapshot) {
	common := []any{"interval", l.interval.String()}

	l.logger.Info("reads",
		append(common,
			"hits", int64(d.Hits),
			"misses", int64(d.Misses),
			"stale_evicted", int64(d.StaleEvicted),
			"expiry_scheduled", int64(d.Scheduled),
		)...,
	)

	if d.Pushed > 0 || d.PushFailed > 0 || d.Trims > 0 {
		l.logger.Info("lists",
			append(common,
				"pushed", int64(d.Pushed),
				"push_failed", int64(d.PushFailed),
				"trims", int64(d.Trims),
				"trimmed_slots", int64(d.TrimmedSlots),
			)...,
		)
	}

	if d.LockSpins > 0 || d.PushLockOut > 0 || d.IndexLockOut > 0 {
		l.logger.Warn("contention",
			append(common,
				"lock_spins", int64(d.LockSpins),
				"push_lock_exhausted", int64(d.PushLockOut),
				"index_exhausted", int64(d.IndexLockOut),
			)...,
		)
	}

	if sizer, ok := l.store.(store.Sizer); ok {
		l.logger.Info("storage",
			append(common,
				"size", bytes.FmtMem(sizer.Mem()),
				"entries", sizer.Len(),
			)...,
		)
	}
}
