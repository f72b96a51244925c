package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"folio/internal/app"
	"folio/internal/config"
	"folio/internal/logging"

	_ "github.com/lib/pq"
)

var configFiles config.Paths

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
}

// Consumes activity events and recomputes the affected portfolio for each.
func main() {
	flag.Parse()

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		logging.New(config.LoggingConfig{}).Fatal().Err(err).Msg("failed to load configuration")
	}
	logger := logging.New(cfg.Logging)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize application")
		os.Exit(1)
	}
	defer a.Close()

	consumer, err := a.Consumer()
	if err != nil {
		logger.Error().Err(err).Msg("ledger worker needs a queue")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("queue", cfg.Queue.URL).Msg("ledger worker polling")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("ledger worker stopped")
		os.Exit(1)
	}
	logger.Info().Msg("ledger worker stopped")
}
