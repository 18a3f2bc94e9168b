package main

import (
	"context"
	"errors"
	"flag"
	"github.com/Borislavv/go-ash-kv/internal/cli"
	"github.com/rs/zerolog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := cli.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		logger.Fatal().Err(err).Msg("parse flags")
	}
	if !cfg.Verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = cli.Run(ctx, cfg, os.Stdout, logger); err != nil {
		if errors.Is(err, cli.ErrFailed) {
			logger.Error().Err(err).Msg(cfg.Command)
			stop()
			os.Exit(1)
		}
		logger.Fatal().Err(err).Msg(cfg.Command)
	}
}
