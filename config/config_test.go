package config

import (
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ashkv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// TestDefault_MatchesHistoricalDefaults keeps the deployed defaults.
func TestDefault_MatchesHistoricalDefaults(t *testing.T) {
	cfg := Default()

	require.Equal(t, "localhost", cfg.Host)
	require.Equal(t, 11211, cfg.DefaultPort)
	require.Equal(t, "club", cfg.KeyPrefix)
	require.True(t, cfg.SoftExpiration)
	require.Equal(t, 100, cfg.Lists.LockRetries)
	require.Equal(t, 1000, cfg.Lists.IncrementRetries)
	require.Equal(t, time.Microsecond, cfg.Lists.RetryDelay)
	require.Equal(t, time.Millisecond, cfg.Lists.TrimSettle)
	require.Zero(t, cfg.Lists.LockTTL)
	require.Equal(t, uint64(1<<20), cfg.Lists.TrimMaxSlots)
	require.False(t, cfg.Compression.Enabled())
	require.False(t, cfg.Telemetry.Enabled())
	require.NoError(t, cfg.Validate())
}

// TestLoadConfig_YAML overrides defaults with file values.
func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, `
host: cache.internal:11311
key_prefix: shop
soft_expiration: false
lists:
  lock_retries: 5
  retry_delay: 10us
  lock_ttl: 30s
compression:
  flag: compressed
  level: 1
telemetry:
  interval: 0s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "cache.internal:11311", cfg.Host)
	require.Equal(t, "shop", cfg.KeyPrefix)
	require.False(t, cfg.SoftExpiration)
	require.Equal(t, 5, cfg.Lists.LockRetries)
	require.Equal(t, 1000, cfg.Lists.IncrementRetries, "untouched fields keep defaults")
	require.Equal(t, 10*time.Microsecond, cfg.Lists.RetryDelay)
	require.Equal(t, 30*time.Second, cfg.Lists.LockTTL)
	require.True(t, cfg.Compression.Enabled())
	require.Equal(t, 1, cfg.Compression.Level)
	require.True(t, cfg.Telemetry.Enabled())
	require.Equal(t, DefaultTelemetryEvery, cfg.Telemetry.Interval, "zero interval is adjusted")
}

// TestLoadConfig_EnvOverrides lets ASHKV_* win over the file.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "host: from-file\n")
	t.Setenv("ASHKV_HOST", "from-env:11212")
	t.Setenv("ASHKV_KEY_PREFIX", "env")
	t.Setenv("ASHKV_LISTS_INCREMENT_RETRIES", "7")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "from-env:11212", cfg.Host)
	require.Equal(t, "env", cfg.KeyPrefix)
	require.Equal(t, 7, cfg.Lists.IncrementRetries)
}

// TestLoadConfig_Errors reports unreadable or invalid files.
func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "host: [unterminated\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "host: x\ncompression:\n  flag: zstd\n"))
	require.ErrorIs(t, err, ErrInvalid)

	_, err = LoadConfig(writeConfig(t, "host: x\nlists:\n  lock_ttl: -1s\n"))
	require.ErrorIs(t, err, ErrInvalid)
}

// TestValidate_LockTTLWholeSeconds rejects a lease memcached would truncate to none.
func TestValidate_LockTTLWholeSeconds(t *testing.T) {
	cfg := Default()
	cfg.Lists.LockTTL = 500 * time.Millisecond
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.Lists.LockTTL = 1500 * time.Millisecond
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.Lists.LockTTL = 2 * time.Second
	require.NoError(t, cfg.Validate())
}

// TestAdjustConfig_FillsZeroes repairs a hand-built config.
func TestAdjustConfig_FillsZeroes(t *testing.T) {
	cfg := &Facade{Host: "h", Lists: ListsCfg{RetryDelay: -time.Second}}
	cfg.AdjustConfig()

	require.Equal(t, DefaultPort, cfg.DefaultPort)
	require.Equal(t, DefaultLockRetries, cfg.Lists.LockRetries)
	require.Equal(t, DefaultIncrementRetries, cfg.Lists.IncrementRetries)
	require.Zero(t, cfg.Lists.RetryDelay)
	require.Equal(t, 1, cfg.Lists.TrimReadConcurrency)
	require.Equal(t, uint64(DefaultTrimMaxSlots), cfg.Lists.TrimMaxSlots)
}

// TestValidate_EmptyHost is a setup mistake.
func TestValidate_EmptyHost(t *testing.T) {
	require.ErrorIs(t, (&Facade{}).Validate(), ErrInvalid)
}
