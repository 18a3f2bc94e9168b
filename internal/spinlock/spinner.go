package spinlock

import (
	"errors"
	"fmt"
	"go.uber.org/ratelimit"
	"runtime"
	"time"
)

// ErrExhausted is returned once a Spinner has used up its attempts.
var ErrExhausted = errors.New("spin: retry ceiling reached")

// Spinner is a bounded busy-wait loop. The first attempt runs immediately,
// the following ones are spaced by Delay (or a scheduler yield when Delay is 0).
type Spinner struct {
	// Attempts is the total number of calls to fn, first one included.
	Attempts int
	Delay    time.Duration
	// OnSpin, if set, is called before every retry.
	OnSpin func()
}

// Spin calls fn until it reports done, fails, or the attempts are used up.
// It returns the number of calls made.
func (s Spinner) Spin(fn func() (done bool, err error)) (int, error) {
	limit := max(s.Attempts, 1)
	pace := s.pacer()
	for attempt := 1; ; attempt++ {
		done, err := fn()
		if err != nil {
			return attempt, err
		}
		if done {
			return attempt, nil
		}
		if attempt >= limit {
			return attempt, fmt.Errorf("%w after %d attempts", ErrExhausted, attempt)
		}
		if s.OnSpin != nil {
			s.OnSpin()
		}
		pace()
	}
}

func (s Spinner) pacer() func() {
	if s.Delay <= 0 {
		return runtime.Gosched
	}
	rl := ratelimit.New(1, ratelimit.Per(s.Delay), ratelimit.WithoutSlack)
	// the limiter lets the first Take through at once, spend it here
	rl.Take()
	return func() { rl.Take() }
}
