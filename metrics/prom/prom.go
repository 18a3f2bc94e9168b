package prom

import (
	"github.com/Borislavv/go-ash-kv/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements metrics.Metrics and exports Prometheus counters.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	stale     prometheus.Counter
	scheduled prometheus.Counter
	spins     prometheus.Counter
	exhausted *prometheus.CounterVec
	pushes    *prometheus.CounterVec
	trims     prometheus.Counter
	trimSlots prometheus.Counter
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	a := &Adapter{
		hits:      counter("hits_total", "Get hits"),
		misses:    counter("misses_total", "Get misses, stale reads included"),
		stale:     counter("stale_evictions_total", "Entries deleted by a read past their stale deadline"),
		scheduled: counter("expiry_scheduled_total", "Stale deadlines written"),
		spins:     counter("lock_spins_total", "Busy-wait rounds spent on list locks and index contention"),
		exhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "retry_exhausted_total",
				Help:        "Operations that hit their retry ceiling, by site",
				ConstLabels: constLabels,
			},
			[]string{"op"},
		),
		pushes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "list_pushes_total",
				Help:        "List pushes by outcome",
				ConstLabels: constLabels,
			},
			[]string{"result"},
		),
		trims:     counter("list_trims_total", "Completed list trims"),
		trimSlots: counter("list_trimmed_slots_total", "Slots returned by list trims"),
	}
	reg.MustRegister(a.hits, a.misses, a.stale, a.scheduled, a.spins, a.exhausted, a.pushes, a.trims, a.trimSlots)
	return a
}

func (a *Adapter) Hit()          { a.hits.Inc() }
func (a *Adapter) Miss()         { a.misses.Inc() }
func (a *Adapter) StaleEvicted() { a.stale.Inc() }
func (a *Adapter) Scheduled()    { a.scheduled.Inc() }
func (a *Adapter) LockSpin()     { a.spins.Inc() }
func (a *Adapter) Pushed()       { a.pushes.WithLabelValues("ok").Inc() }
func (a *Adapter) PushFailed()   { a.pushes.WithLabelValues("failed").Inc() }

// Exhausted increments the retry-ceiling counter labelled with the retry site.
func (a *Adapter) Exhausted(op metrics.Op) {
	a.exhausted.WithLabelValues(string(op)).Inc()
}

// Trimmed counts one trim and the number of slots it returned.
func (a *Adapter) Trimmed(slots int) {
	a.trims.Inc()
	a.trimSlots.Add(float64(slots))
}

// Compile-time check: ensure Adapter implements metrics.Metrics.
var _ metrics.Metrics = (*Adapter)(nil)
