package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"folio/internal/app"
	"folio/internal/config"
	"folio/internal/logging"

	_ "github.com/lib/pq"
)

var (
	configFiles config.Paths
	symbols     = flag.String("symbols", "", "Comma separated symbols to refresh; every known stock when empty")
	pairs       = flag.String("fx", "", "Comma separated currency pairs to refresh, e.g. EUR/USD")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	return out
}

func main() {
	flag.Parse()

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		logging.New(config.LoggingConfig{}).Fatal().Err(err).Msg("failed to load configuration")
	}
	logger := logging.New(cfg.Logging)
	if cfg.Prices.AlphaVantageKey == "" {
		logger.Error().Msg("missing alpha vantage key")
		os.Exit(1)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize application")
		os.Exit(1)
	}
	defer a.Close()

	ctx := context.Background()
	ingestor := a.PriceIngestor()

	failed := false
	if err := ingestor.UpdatePrices(ctx, splitList(*symbols)); err != nil {
		logger.Error().Err(err).Msg("failed to update prices")
		failed = true
	}
	if fx := splitList(*pairs); len(fx) > 0 {
		if err := ingestor.UpdateExchangeRates(ctx, fx); err != nil {
			logger.Error().Err(err).Msg("failed to update exchange rates")
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
