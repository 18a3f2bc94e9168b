package config

import "time"

// ListsCfg tunes the indexed list and its cache-resident lock.
type ListsCfg struct {
	// LockRetries bounds how many times a push checks a lock held by a trim before failing.
	LockRetries int `yaml:"lock_retries" env:"LOCK_RETRIES"`

	// IncrementRetries bounds slot allocation when pushers race on index creation.
	IncrementRetries int `yaml:"increment_retries" env:"INCREMENT_RETRIES"`

	// RetryDelay is the pause between two attempts. 0 yields the processor instead.
	RetryDelay time.Duration `yaml:"retry_delay" env:"RETRY_DELAY"`

	// TrimSettle is slept by a trim after taking the lock, before reading the index.
	TrimSettle time.Duration `yaml:"trim_settle" env:"TRIM_SETTLE"`

	// LockTTL is an optional lease on the list lock, in whole seconds. With 0 (the
	// default) a trimmer that dies mid-trim leaves the lock and pushes fail until
	// the next trim takes it over. A non-zero lease lets such a lock lapse on its own.
	LockTTL time.Duration `yaml:"lock_ttl" env:"LOCK_TTL"`

	// TrimReadConcurrency bounds parallel slot reads during a trim.
	TrimReadConcurrency int `yaml:"trim_read_concurrency" env:"TRIM_READ_CONCURRENCY"`

	// TrimMaxSlots is the largest index a trim reads up to. A list whose index
	// went past it (or was overwritten with a huge number) fails to trim.
	TrimMaxSlots uint64 `yaml:"trim_max_slots" env:"TRIM_MAX_SLOTS"`
}
