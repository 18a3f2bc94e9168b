package config

import (
	"errors"
	"fmt"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

// EnvPrefix namespaces environment overrides, e.g. ASHKV_HOST or ASHKV_LISTS_LOCK_TTL.
const EnvPrefix = "ASHKV_"

var ErrInvalid = errors.New("invalid config")

// AdjustConfig fills zero values with defaults. Host is left alone: an empty
// host is a setup mistake reported by Validate.
func (cfg *Facade) AdjustConfig() {
	if cfg.DefaultPort <= 0 {
		cfg.DefaultPort = DefaultPort
	}
	if cfg.Lists.LockRetries <= 0 {
		cfg.Lists.LockRetries = DefaultLockRetries
	}
	if cfg.Lists.IncrementRetries <= 0 {
		cfg.Lists.IncrementRetries = DefaultIncrementRetries
	}
	if cfg.Lists.RetryDelay < 0 {
		cfg.Lists.RetryDelay = 0
	}
	if cfg.Lists.TrimSettle < 0 {
		cfg.Lists.TrimSettle = 0
	}
	if cfg.Lists.TrimReadConcurrency <= 0 {
		cfg.Lists.TrimReadConcurrency = 1
	}
	if cfg.Lists.TrimMaxSlots == 0 {
		cfg.Lists.TrimMaxSlots = DefaultTrimMaxSlots
	}
	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = DefaultTelemetryEvery
	}
}

func (cfg *Facade) Validate() error {
	if cfg.Host == "" {
		return fmt.Errorf("%w: host is empty", ErrInvalid)
	}
	if cfg.Lists.LockTTL < 0 {
		return fmt.Errorf("%w: lists.lock_ttl is negative", ErrInvalid)
	}
	if cfg.Lists.LockTTL%time.Second != 0 {
		return fmt.Errorf("%w: lists.lock_ttl %s is not a whole number of seconds", ErrInvalid, cfg.Lists.LockTTL)
	}
	if cfg.Compression != nil {
		switch cfg.Compression.Flag {
		case FlagNone, FlagCompressed:
		default:
			return fmt.Errorf("%w: compression.flag %q", ErrInvalid, cfg.Compression.Flag)
		}
		if cfg.Compression.Level < -2 || cfg.Compression.Level > 9 {
			return fmt.Errorf("%w: compression.level %d", ErrInvalid, cfg.Compression.Level)
		}
	}
	return nil
}

// LoadConfig reads a YAML file on top of Default, then applies ASHKV_* environment overrides.
func LoadConfig(path string) (*Facade, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if err = ParseEnv(cfg); err != nil {
		return nil, err
	}
	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv overrides cfg fields from ASHKV_* environment variables.
func ParseEnv(cfg *Facade) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
