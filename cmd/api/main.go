package main

import (
	"flag"
	"os"

	"folio/api"
	"folio/internal/app"
	"folio/internal/config"
	"folio/internal/logging"

	_ "github.com/lib/pq"
)

var (
	configFiles config.Paths
	port        = flag.Int("port", 0, "Server port (overrides config)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
}

func main() {
	flag.Parse()

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		logging.New(config.LoggingConfig{}).Fatal().Err(err).Msg("failed to load configuration")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	logger := logging.New(cfg.Logging)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize application")
		os.Exit(1)
	}
	defer a.Close()

	logger.Info().Int("port", cfg.Server.Port).Msg("starting api")
	if err := api.StartApi(cfg.Server.Port, a.Resolver, logger); err != nil {
		logger.Error().Err(err).Msg("api stopped")
		os.Exit(1)
	}
}
