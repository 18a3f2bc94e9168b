// Package cli implements the ashkv operator tool on top of the facade.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/Borislavv/go-ash-kv"
	"github.com/Borislavv/go-ash-kv/config"
	"github.com/rs/zerolog"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"time"
)

var (
	ErrUsage  = errors.New("usage")
	ErrFailed = errors.New("operation failed")
)

const usage = `usage: ashkv [flags] <command> [args]

commands:
  get KEY
  set|add|replace KEY VALUE [TTL]
  delete KEY
  incr KEY [BY]
  flush
  expire KEY SECONDS
  expirations
  purge-expirations
  push LIST VALUE [TTL]
  trim LIST`

type Config struct {
	ConfigPath string
	Host       string
	Prefix     string
	Compress   bool
	Verbose    bool
	Command    string
	Args       []string
}

// ParseConfig parses flags and the command line that follows them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.ConfigPath, "config", "", "path to a yaml config file")
	fs.StringVar(&cfg.Host, "host", "", "cache host[:port], or "+config.MemoryHost)
	fs.StringVar(&cfg.Prefix, "prefix", "", "key prefix override")
	fs.BoolVar(&cfg.Compress, "compress", false, "ask for compression on writes")
	fs.BoolVar(&cfg.Verbose, "v", false, "log facade activity")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() == 0 {
		return Config{}, fmt.Errorf("%w: no command\n%s", ErrUsage, usage)
	}
	cfg.Command, cfg.Args = fs.Arg(0), fs.Args()[1:]
	return cfg, nil
}

// Facade resolves the effective facade config: file (or defaults), env, then flags.
func (c Config) Facade() (*config.Facade, error) {
	var (
		cfg *config.Facade
		err error
	)
	if c.ConfigPath != "" {
		if cfg, err = config.LoadConfig(c.ConfigPath); err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
		if err = config.ParseEnv(cfg); err != nil {
			return nil, err
		}
	}
	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Prefix != "" {
		cfg.KeyPrefix = c.Prefix
	}
	cfg.AdjustConfig()
	return cfg, cfg.Validate()
}

// Run executes one command and writes its result to out.
func Run(ctx context.Context, cfg Config, out io.Writer, logger zerolog.Logger) (err error) {
	fcfg, err := cfg.Facade()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	client := ashkv.New(ctx, fcfg, slog.New(slog.NewTextHandler(logger, &slog.HandlerOptions{Level: level})))
	defer func() { _ = client.Close() }()

	defer func() {
		if r := recover(); r != nil {
			var ce *ashkv.ConfigError
			if e, ok := r.(error); ok && errors.As(e, &ce) {
				err = ce
				return
			}
			panic(r)
		}
	}()

	logger.Debug().Str("cmd", cfg.Command).Strs("args", cfg.Args).Str("host", fcfg.Host).Msg("running")
	return run(client, cfg, out)
}

func run(c *ashkv.Client, cfg Config, out io.Writer) error {
	args := cfg.Args
	switch cfg.Command {
	case "get":
		if err := arity(args, 1, 1); err != nil {
			return err
		}
		v, ok := c.Get(args[0])
		if !ok {
			return result("get", false)
		}
		_, err := fmt.Fprintln(out, string(v))
		return err

	case "set", "add", "replace":
		if err := arity(args, 2, 3); err != nil {
			return err
		}
		write := map[string]func(string, []byte, time.Duration, bool) bool{
			"set": c.Set, "add": c.Add, "replace": c.Replace,
		}[cfg.Command]
		return result(cfg.Command, write(args[0], []byte(args[1]), ttlArg(args, 2), cfg.Compress))

	case "delete":
		if err := arity(args, 1, 1); err != nil {
			return err
		}
		return result("delete", c.Delete(args[0]))

	case "incr":
		if err := arity(args, 1, 2); err != nil {
			return err
		}
		by := uint64(1)
		if len(args) == 2 {
			n, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: incr step %q", ErrUsage, args[1])
			}
			by = n
		}
		v, ok := c.Increment(args[0], by)
		if !ok {
			return result("incr", false)
		}
		_, err := fmt.Fprintln(out, v)
		return err

	case "flush":
		return result("flush", c.Flush())

	case "expire":
		if err := arity(args, 2, 2); err != nil {
			return err
		}
		return result("expire", c.ScheduleExpiry(args[0], ashkv.MustTTL(args[1])))

	case "expirations":
		deadlines, ok := c.ListScheduledExpirations()
		if !ok {
			return result("expirations", false)
		}
		keys := make([]string, 0, len(deadlines))
		for k := range deadlines {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			at := time.Unix(deadlines[k], 0).UTC().Format(time.RFC3339)
			if _, err := fmt.Fprintf(out, "%s\t%s\n", k, at); err != nil {
				return err
			}
		}
		return nil

	case "purge-expirations":
		return result("purge-expirations", c.PurgeExpirationSchedule())

	case "push":
		if err := arity(args, 2, 3); err != nil {
			return err
		}
		return result("push", c.Push(args[0], []byte(args[1]), ttlArg(args, 2)))

	case "trim":
		if err := arity(args, 1, 1); err != nil {
			return err
		}
		slots := c.Trim(args[0])
		if slots == nil {
			return result("trim", false)
		}
		for _, slot := range slots {
			if _, err := fmt.Fprintf(out, "%d\t%s\n", slot.Index, slot.Value); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown command %q\n%s", ErrUsage, cfg.Command, usage)
	}
}

func ttlArg(args []string, i int) time.Duration {
	if len(args) > i {
		return ashkv.MustTTL(args[i])
	}
	return config.DefaultItemTTL
}

func arity(args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return fmt.Errorf("%w: wrong number of arguments\n%s", ErrUsage, usage)
	}
	return nil
}

func result(op string, ok bool) error {
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrFailed)
	}
	return nil
}
