package memory

import (
	"github.com/Borislavv/go-ash-kv/internal/shared/cachedtime"
	"github.com/Borislavv/go-ash-kv/internal/store"
	"github.com/stretchr/testify/require"
	"strconv"
	"sync"
	"testing"
	"time"
)

func newTestStore() (*Store, *cachedtime.Manual) {
	clock := cachedtime.NewManual(time.Unix(1_700_000_000, 0))
	return New(clock), clock
}

// TestStore_SetGet_RoundTrip returns what was stored.
func TestStore_SetGet_RoundTrip(t *testing.T) {
	s, _ := newTestStore()

	require.NoError(t, s.Set("k", []byte("v"), 0, 0))

	v, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
	require.Equal(t, int64(1), s.Len())
	require.Greater(t, s.Mem(), int64(0))
}

// TestStore_Get_Miss reports ErrMiss for unknown keys.
func TestStore_Get_Miss(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.Get("missing")
	require.ErrorIs(t, err, store.ErrMiss)
}

// TestStore_Get_ReturnsCopy isolates callers from stored bytes.
func TestStore_Get_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore()
	in := []byte("abc")
	require.NoError(t, s.Set("k", in, 0, 0))
	in[0] = 'x'

	v, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)
}

// TestStore_TTL_Expires hides items once their ttl has elapsed.
func TestStore_TTL_Expires(t *testing.T) {
	s, clock := newTestStore()
	require.NoError(t, s.Set("k", []byte("v"), 0, 10*time.Second))

	clock.Advance(9 * time.Second)
	_, err := s.Get("k")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = s.Get("k")
	require.ErrorIs(t, err, store.ErrMiss)

	// an expired key can be added again
	require.NoError(t, s.Add("k", []byte("v2"), 0, 0))
}

// TestStore_Add_FailsWhenPresent only stores absent keys.
func TestStore_Add_FailsWhenPresent(t *testing.T) {
	s, _ := newTestStore()

	require.NoError(t, s.Add("k", []byte("1"), 0, 0))
	require.ErrorIs(t, s.Add("k", []byte("2"), 0, 0), store.ErrNotStored)

	v, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("1"), v)
}

// TestStore_Replace_FailsWhenAbsent only overwrites existing keys.
func TestStore_Replace_FailsWhenAbsent(t *testing.T) {
	s, _ := newTestStore()

	require.ErrorIs(t, s.Replace("k", []byte("1"), 0, 0), store.ErrNotStored)
	require.NoError(t, s.Set("k", []byte("1"), 0, 0))
	require.NoError(t, s.Replace("k", []byte("2"), store.FlagCompressed, 0))

	v, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("2"), v)
}

// TestStore_Delete removes present keys and misses absent ones.
func TestStore_Delete(t *testing.T) {
	s, _ := newTestStore()
	require.NoError(t, s.Set("k", []byte("v"), 0, 0))

	require.NoError(t, s.Delete("k"))
	require.ErrorIs(t, s.Delete("k"), store.ErrMiss)
	require.Equal(t, int64(0), s.Len())
	require.Equal(t, int64(0), s.Mem())
}

// TestStore_Increment follows memcached incr semantics.
func TestStore_Increment(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.Increment("n", 1)
	require.ErrorIs(t, err, store.ErrMiss)

	require.NoError(t, s.Add("n", []byte("1"), 0, 0))
	v, err := s.Increment("n", 4)
	require.NoError(t, err)
	require.Equal(t, uint64(5), v)

	raw, err := s.Get("n")
	require.NoError(t, err)
	require.Equal(t, []byte("5"), raw)

	require.NoError(t, s.Set("word", []byte("abc"), 0, 0))
	_, err = s.Increment("word", 1)
	require.ErrorIs(t, err, store.ErrNotNumeric)
}

// TestStore_Increment_Concurrent hands out every value exactly once.
func TestStore_Increment_Concurrent(t *testing.T) {
	s, _ := newTestStore()
	require.NoError(t, s.Add("n", []byte("0"), 0, 0))

	const workers, perWorker = 8, 250
	var (
		mu   sync.Mutex
		seen = make(map[uint64]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for i := 0; i < perWorker; i++ {
				v, err := s.Increment("n", 1)
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				seen[v] = struct{}{}
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
}

// TestStore_Flush drops everything.
func TestStore_Flush(t *testing.T) {
	s, _ := newTestStore()
	for i := 0; i < 100; i++ {
		require.NoError(t, s.Set("k"+strconv.Itoa(i), []byte("v"), 0, 0))
	}
	require.Equal(t, int64(100), s.Len())

	require.NoError(t, s.Flush())
	require.Equal(t, int64(0), s.Len())
	require.Equal(t, int64(0), s.Mem())
}

// TestShard_Bucket_HandlesSharedHash keeps distinct keys apart inside one bucket.
func TestShard_Bucket_HandlesSharedHash(t *testing.T) {
	sh := newShard()
	sh.Lock()
	sh.putUnlocked(42, &entry{key: "a", value: []byte("1")})
	sh.putUnlocked(42, &entry{key: "b", value: []byte("2")})
	sh.Unlock()

	a, ok := sh.peek(42, "a", 0)
	require.True(t, ok)
	require.Equal(t, []byte("1"), a.value)

	sh.Lock()
	require.True(t, sh.removeUnlocked(42, "a"))
	sh.Unlock()

	_, ok = sh.peek(42, "a", 0)
	require.False(t, ok)
	b, ok := sh.peek(42, "b", 0)
	require.True(t, ok)
	require.Equal(t, []byte("2"), b.value)
	require.Equal(t, int64(1), sh.Len())
}
