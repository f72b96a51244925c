package prices

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	db_utils "folio/internal/db/utils"
	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/repository"
	"folio/internal/timeseries"
	"folio/internal/util"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

// CacheInvalidator is told when a stored series changes.
type CacheInvalidator interface {
	Invalidate(symbol string)
}

type Ingestor struct {
	TxRunner               db_utils.TxRunner
	Source                 PriceSource
	PriceRepository        repository.PriceRepository
	StockRepository        repository.StockRepository
	ExchangeRateRepository repository.ExchangeRateRepository
	Cache                  CacheInvalidator
	Logger                 *log.Logger
}

// UpdatePrices refreshes the series of each symbol, or of every known
// stock when symbols is empty. A failing symbol does not stop the others.
func (i Ingestor) UpdatePrices(ctx context.Context, symbols []string) error {
	logger := logging.OrSilent(i.Logger)
	if len(symbols) == 0 {
		err := i.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
			stocks, err := i.StockRepository.List(tx)
			if err != nil {
				return err
			}
			for _, s := range stocks {
				symbols = append(symbols, s.Symbol)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to list stocks: %w", err)
		}
	}

	errs := []error{}
	for _, symbol := range symbols {
		fetched, err := i.Source.GetDailyPrices(symbol)
		if err != nil {
			logger.Error().Str("symbol", symbol).Err(err).Msg("failed to fetch prices")
			errs = append(errs, fmt.Errorf("%s: %w", symbol, err))
			continue
		}
		err = i.storeMerged(ctx, symbol, fetched,
			func(tx *sql.Tx) ([]timeseries.Point, error) {
				return i.PriceRepository.List(tx, symbol)
			},
			func(tx *sql.Tx, points []timeseries.Point) error {
				return i.PriceRepository.Replace(tx, symbol, points)
			},
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", symbol, err))
			continue
		}
		if i.Cache != nil {
			i.Cache.Invalidate(symbol)
		}
	}
	return errors.Join(errs...)
}

// UpdateExchangeRates refreshes each pair, written as "FROM/TO".
func (i Ingestor) UpdateExchangeRates(ctx context.Context, pairs []string) error {
	logger := logging.OrSilent(i.Logger)
	errs := []error{}
	for _, pair := range pairs {
		from, to, ok := strings.Cut(pair, "/")
		if !ok || domain.ValidateCurrency(from) != nil || domain.ValidateCurrency(to) != nil {
			errs = append(errs, fmt.Errorf("invalid currency pair %q", pair))
			continue
		}
		fetched, err := i.Source.GetDailyExchangeRates(from, to)
		if err != nil {
			logger.Error().Str("pair", pair).Err(err).Msg("failed to fetch exchange rates")
			errs = append(errs, fmt.Errorf("%s: %w", pair, err))
			continue
		}
		err = i.storeMerged(ctx, pair, fetched,
			func(tx *sql.Tx) ([]timeseries.Point, error) {
				return i.ExchangeRateRepository.List(tx, from, to)
			},
			func(tx *sql.Tx, points []timeseries.Point) error {
				return i.ExchangeRateRepository.Replace(tx, from, to, points)
			},
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", pair, err))
		}
	}
	return errors.Join(errs...)
}

// storeMerged overlays fetched on the stored series. A fetched range with
// duplicate dates is discarded whole.
func (i Ingestor) storeMerged(
	ctx context.Context,
	name string,
	fetched []timeseries.Point,
	list func(tx *sql.Tx) ([]timeseries.Point, error),
	replace func(tx *sql.Tx, points []timeseries.Point) error,
) error {
	logger := logging.OrSilent(i.Logger)
	if !timeseries.Validate(fetched) {
		logger.Warn().Str("series", name).Int("points", len(fetched)).Msg("discarding fetched range with duplicate dates")
		return nil
	}
	incoming := timeseries.New(logger)
	if dropped := incoming.Load(fetched); dropped > 0 {
		logger.Warn().Str("series", name).Int("dropped", dropped).Msg("fetched range had unparseable dates")
	}
	if incoming.Len() == 0 {
		return nil
	}

	return i.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		existing, err := list(tx)
		if err != nil {
			return err
		}
		merged := timeseries.FromPoints(existing, logger).MergeWith(incoming)
		if err := replace(tx, merged.Points()); err != nil {
			return err
		}
		logger.Info().Str("series", name).Int("fetched", incoming.Len()).Int("stored", merged.Len()).Msg("updated series")
		return nil
	})
}

// ImportCsv loads prices from a CSV with symbol, price and date columns in
// any order.
func (i Ingestor) ImportCsv(ctx context.Context, r io.Reader) error {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	columns, err := determineColumnOrdering(rows[0], []string{"symbol", "price", "date"})
	if err != nil {
		return err
	}

	bySymbol := map[string][]timeseries.Point{}
	for n, row := range rows[1:] {
		price, err := decimal.NewFromString(strings.TrimSpace(row[columns["price"]]))
		if err != nil {
			return fmt.Errorf("failed to parse price on row %d: %w", n+2, err)
		}
		symbol := strings.ToUpper(strings.TrimSpace(row[columns["symbol"]]))
		bySymbol[symbol] = append(bySymbol[symbol], timeseries.Point{
			Date:  strings.TrimSpace(row[columns["date"]]),
			Value: price,
		})
	}

	for _, symbol := range util.SortedMapKeys(bySymbol) {
		err := i.storeMerged(ctx, symbol, bySymbol[symbol],
			func(tx *sql.Tx) ([]timeseries.Point, error) {
				return i.PriceRepository.List(tx, symbol)
			},
			func(tx *sql.Tx, points []timeseries.Point) error {
				return i.PriceRepository.Replace(tx, symbol, points)
			},
		)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", symbol, err)
		}
		if i.Cache != nil {
			i.Cache.Invalidate(symbol)
		}
	}
	return nil
}

func determineColumnOrdering(headerRow []string, requiredHeaders []string) (map[string]int, error) {
	out := map[string]int{}
	for i, h := range headerRow {
		out[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := out[h]; !ok {
			return nil, fmt.Errorf("missing required column %q", h)
		}
	}
	result := make(map[string]int, len(requiredHeaders))
	for _, h := range requiredHeaders {
		result[h] = out[h]
	}
	return result, nil
}
