package cli

import (
	"bytes"
	"context"
	"flag"
	"github.com/Borislavv/go-ash-kv"
	"github.com/Borislavv/go-ash-kv/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	cfg, err := ParseConfig(flag.NewFlagSet("ashkv", flag.ContinueOnError), args)
	require.NoError(t, err)
	return cfg
}

func runMemory(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := parse(t, append([]string{"-host", config.MemoryHost}, args...)...)
	out := &bytes.Buffer{}
	err := Run(context.Background(), cfg, out, zerolog.Nop())
	return out.String(), err
}

// TestParseConfig_Command splits flags from the command line.
func TestParseConfig_Command(t *testing.T) {
	cfg := parse(t, "-host", "h:1", "-prefix", "p", "-compress", "set", "k", "v", "60")

	require.Equal(t, "h:1", cfg.Host)
	require.Equal(t, "p", cfg.Prefix)
	require.True(t, cfg.Compress)
	require.Equal(t, "set", cfg.Command)
	require.Equal(t, []string{"k", "v", "60"}, cfg.Args)
}

// TestParseConfig_NoCommand is a usage error.
func TestParseConfig_NoCommand(t *testing.T) {
	_, err := ParseConfig(flag.NewFlagSet("ashkv", flag.ContinueOnError), []string{"-v"})
	require.ErrorIs(t, err, ErrUsage)
}

// TestConfig_Facade layers flags over the file.
func TestConfig_Facade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ashkv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: file:1\nkey_prefix: file\n"), 0o600))

	cfg, err := Config{ConfigPath: path, Prefix: "flag"}.Facade()
	require.NoError(t, err)
	require.Equal(t, "file:1", cfg.Host)
	require.Equal(t, "flag", cfg.KeyPrefix)

	cfg, err = Config{}.Facade()
	require.NoError(t, err)
	require.Equal(t, config.DefaultHost, cfg.Host)
}

// TestRun_Writes succeeds against the embedded store.
func TestRun_Writes(t *testing.T) {
	for _, args := range [][]string{
		{"set", "k", "v"},
		{"add", "k", "v", "60"},
		{"push", "events", "A", "60"},
		{"expire", "k", "10"},
		{"purge-expirations"},
		{"flush"},
	} {
		_, err := runMemory(t, args...)
		require.NoError(t, err, args)
	}
}

// TestRun_Failures reports false results as ErrFailed.
func TestRun_Failures(t *testing.T) {
	for _, args := range [][]string{
		{"get", "missing"},
		{"replace", "missing", "v"},
		{"delete", "missing"},
		{"incr", "missing"},
		{"trim", ""},
	} {
		_, err := runMemory(t, args...)
		require.ErrorIs(t, err, ErrFailed, args)
	}
}

// TestRun_Reads prints nothing for empty collections.
func TestRun_Reads(t *testing.T) {
	out, err := runMemory(t, "trim", "events")
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = runMemory(t, "expirations")
	require.NoError(t, err)
	require.Empty(t, out)
}

// TestRun_Usage rejects malformed command lines.
func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{
		{"nope"},
		{"get"},
		{"set", "k"},
		{"incr", "k", "x"},
		{"trim", "a", "b"},
	} {
		_, err := runMemory(t, args...)
		require.ErrorIs(t, err, ErrUsage, args)
	}
}

// TestRun_NonNumericTTL surfaces the configuration error instead of crashing.
func TestRun_NonNumericTTL(t *testing.T) {
	_, err := runMemory(t, "set", "k", "v", "abc")
	require.ErrorIs(t, err, ashkv.ErrNonNumericTTL)
	var ce *ashkv.ConfigError
	require.ErrorAs(t, err, &ce)
}
