package ashkv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTTL is a ttl that is negative or not a whole number of seconds.
	ErrInvalidTTL = errors.New("invalid ttl")
	// ErrNonNumericTTL is a textual ttl that is not a decimal number of seconds.
	ErrNonNumericTTL = errors.New("non-numeric ttl")
)

// ConfigError is a programming error in the arguments of a call. It is raised
// with panic, never returned: the call is aborted before anything is written.
type ConfigError struct {
	Op  string
	TTL string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ashkv: %s: ttl %q: %v", e.Op, e.TTL, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// MustTTL parses a ttl given as decimal seconds, e.g. "60". Anything else panics.
func MustTTL(s string) time.Duration {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		panic(&ConfigError{Op: "parse", TTL: s, Err: ErrNonNumericTTL})
	}
	return time.Duration(n) * time.Second
}

func mustValidTTL(op string, ttl time.Duration) {
	if ttl < 0 || ttl%time.Second != 0 {
		panic(&ConfigError{Op: op, TTL: ttl.String(), Err: ErrInvalidTTL})
	}
}
