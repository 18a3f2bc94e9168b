package prom

import (
	"github.com/Borislavv/go-ash-kv/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"testing"
)

// TestAdapter_CountsEvents maps every hook onto its counter.
func TestAdapter_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(reg, "ashkv", "facade", prometheus.Labels{"env": "test"})

	a.Hit()
	a.Hit()
	a.Miss()
	a.StaleEvicted()
	a.Scheduled()
	a.LockSpin()
	a.Exhausted(metrics.OpIndexIncr)
	a.Pushed()
	a.PushFailed()
	a.Trimmed(3)

	require.Equal(t, 2.0, testutil.ToFloat64(a.hits))
	require.Equal(t, 1.0, testutil.ToFloat64(a.misses))
	require.Equal(t, 1.0, testutil.ToFloat64(a.stale))
	require.Equal(t, 1.0, testutil.ToFloat64(a.scheduled))
	require.Equal(t, 1.0, testutil.ToFloat64(a.spins))
	require.Equal(t, 1.0, testutil.ToFloat64(a.exhausted.WithLabelValues("index_incr")))
	require.Equal(t, 1.0, testutil.ToFloat64(a.pushes.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(a.pushes.WithLabelValues("failed")))
	require.Equal(t, 1.0, testutil.ToFloat64(a.trims))
	require.Equal(t, 3.0, testutil.ToFloat64(a.trimSlots))
}

// TestNew_RegistersOnce panics on duplicate registration in the same registry.
func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = New(reg, "ashkv", "facade", nil)

	require.Panics(t, func() { _ = New(reg, "ashkv", "facade", nil) })
}
