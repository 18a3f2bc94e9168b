package config

import "time"

// MemoryHost selects the embedded in-process store instead of a memcached server.
const MemoryHost = "memory://"

const (
	DefaultHost             = "localhost"
	DefaultPort             = 11211
	DefaultKeyPrefix        = "club"
	DefaultLockRetries      = 100
	DefaultIncrementRetries = 1000
	DefaultRetryDelay       = time.Microsecond
	DefaultTrimSettle       = time.Millisecond
	DefaultTrimReadWorkers  = 8
	DefaultTrimMaxSlots     = 1 << 20
	DefaultTelemetryEvery   = 5 * time.Second

	// DefaultItemTTL is what callers without an opinion should pass as ttl.
	DefaultItemTTL = time.Hour
)

// Facade groups everything a client handle needs. Optional sections are
// disabled by leaving them nil.
type Facade struct {
	// Host is "hostname[:port]" of the backing server, or MemoryHost.
	Host string `yaml:"host" env:"HOST"`

	// DefaultPort is used when Host carries no port.
	DefaultPort int `yaml:"default_port" env:"DEFAULT_PORT"`

	// KeyPrefix is prepended to every key, the stale map key included.
	KeyPrefix string `yaml:"key_prefix" env:"KEY_PREFIX"`

	// SoftExpiration makes Get consult the stale-deadline map first.
	SoftExpiration bool `yaml:"soft_expiration" env:"SOFT_EXPIRATION"`

	// Timeout is the per-request socket timeout of the memcached client.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`

	// MaxIdleConns caps idle connections kept by the memcached client.
	MaxIdleConns int `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`

	// CacheTimeEnabled serves stale deadlines from a ticker-cached clock.
	CacheTimeEnabled bool `yaml:"cache_time_enabled" env:"CACHE_TIME_ENABLED"`

	Lists ListsCfg `yaml:"lists" envPrefix:"LISTS_"`

	// Compression configures what "compress" means on writes.
	// If nil, writes asking for compression are stored plain.
	Compression *CompressionCfg `yaml:"compression"`

	// Telemetry configures periodic counter logs. If nil, they are off.
	Telemetry *TelemetryCfg `yaml:"telemetry"`
}

// Default mirrors the historical defaults: localhost, prefix "club", soft expiration on.
func Default() *Facade {
	cfg := &Facade{
		Host:           DefaultHost,
		DefaultPort:    DefaultPort,
		KeyPrefix:      DefaultKeyPrefix,
		SoftExpiration: true,
		Lists: ListsCfg{
			LockRetries:         DefaultLockRetries,
			IncrementRetries:    DefaultIncrementRetries,
			RetryDelay:          DefaultRetryDelay,
			TrimSettle:          DefaultTrimSettle,
			TrimReadConcurrency: DefaultTrimReadWorkers,
			TrimMaxSlots:        DefaultTrimMaxSlots,
		},
	}
	return cfg
}
