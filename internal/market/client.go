// Package market answers price, exchange rate and instrument metadata
// questions for the ledger, caching series in memory.
package market

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	folio_errors "folio/internal"
	db_utils "folio/internal/db/utils"
	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/repository"
	"folio/internal/timeseries"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

const DefaultCacheTTL = 10 * time.Minute

type cacheEntry struct {
	series    *timeseries.Series
	fetchedAt time.Time
}

type Client struct {
	TxRunner               db_utils.TxRunner
	PriceRepository        repository.PriceRepository
	StockRepository        repository.StockRepository
	ExchangeRateRepository repository.ExchangeRateRepository
	// Quotes is optional; without it unknown stocks fail.
	Quotes QuoteSource
	TTL    time.Duration
	Logger *log.Logger

	now func() time.Time

	mu     sync.RWMutex
	prices map[string]cacheEntry
	rates  map[string]cacheEntry
}

func NewClient(
	txRunner db_utils.TxRunner,
	priceRepository repository.PriceRepository,
	stockRepository repository.StockRepository,
	exchangeRateRepository repository.ExchangeRateRepository,
	quotes QuoteSource,
	ttl time.Duration,
	logger *log.Logger,
) *Client {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Client{
		TxRunner:               txRunner,
		PriceRepository:        priceRepository,
		StockRepository:        stockRepository,
		ExchangeRateRepository: exchangeRateRepository,
		Quotes:                 quotes,
		TTL:                    ttl,
		Logger:                 logging.OrSilent(logger),
		now:                    time.Now,
		prices:                 map[string]cacheEntry{},
		rates:                  map[string]cacheEntry{},
	}
}

// GetStockInfo reads the stock table, falling back to a live quote for
// symbols it has never seen. Quoted metadata is stored for next time.
func (c *Client) GetStockInfo(ctx context.Context, symbol string) (*domain.StockInfo, error) {
	var info *domain.StockInfo
	err := c.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		info, err = c.StockRepository.Get(tx, symbol)
		return err
	})
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, folio_errors.ErrStockNotFound) || c.Quotes == nil {
		return nil, err
	}

	currency, err := c.Quotes.Currency(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to quote %s: %w", symbol, err)
	}
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("quote for %s: %w", symbol, err)
	}
	info = &domain.StockInfo{Symbol: symbol, Currency: currency}

	err = c.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		return c.StockRepository.Add(tx, *info)
	})
	if err != nil {
		c.Logger.Warn().Str("symbol", symbol).Err(err).Msg("failed to store quoted stock")
	}
	c.Logger.Info().Str("symbol", symbol).Str("currency", currency).Msg("stock metadata from quote")
	return info, nil
}

func (c *Client) PriceSeries(ctx context.Context, symbol string) (*timeseries.Series, error) {
	return c.cached(ctx, c.prices, symbol, func(tx *sql.Tx) ([]timeseries.Point, error) {
		return c.PriceRepository.List(tx, symbol)
	})
}

func (c *Client) ExchangeRateSeries(ctx context.Context, from, to string) (*timeseries.Series, error) {
	return c.cached(ctx, c.rates, from+"/"+to, func(tx *sql.Tx) ([]timeseries.Point, error) {
		return c.ExchangeRateRepository.List(tx, from, to)
	})
}

func (c *Client) cached(
	ctx context.Context,
	cache map[string]cacheEntry,
	key string,
	load func(tx *sql.Tx) ([]timeseries.Point, error),
) (*timeseries.Series, error) {
	c.mu.RLock()
	entry, ok := cache[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.fetchedAt) < c.TTL {
		return entry.series, nil
	}

	var points []timeseries.Point
	err := c.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		points, err = load(tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	series := timeseries.FromPoints(points, c.Logger)
	c.mu.Lock()
	cache[key] = cacheEntry{series: series, fetchedAt: c.now()}
	c.mu.Unlock()
	return series, nil
}

// Invalidate drops cached series for symbol so the next read sees freshly
// ingested prices.
func (c *Client) Invalidate(symbol string) {
	c.mu.Lock()
	delete(c.prices, symbol)
	c.mu.Unlock()
}

// GetPrice is the close on date, forward-filled from the last trading day.
func (c *Client) GetPrice(ctx context.Context, symbol string, date time.Time) (decimal.Decimal, error) {
	series, err := c.PriceSeries(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	if series.Len() == 0 {
		return decimal.Zero, folio_errors.ErrPriceUnavailable{Instrument: symbol, Date: date}
	}
	return series.Get(date), nil
}

// GetExchangeRate converts one unit of from into to. A missing pair is
// served from the inverse pair when that one is stored.
func (c *Client) GetExchangeRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	series, err := c.ExchangeRateSeries(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if series.Len() > 0 {
		return series.Get(date), nil
	}

	inverse, err := c.ExchangeRateSeries(ctx, to, from)
	if err != nil {
		return decimal.Zero, err
	}
	if inverse.Len() > 0 {
		rate := inverse.Get(date)
		if !rate.IsZero() {
			return decimal.NewFromInt(1).Div(rate), nil
		}
	}
	return decimal.Zero, folio_errors.ErrPriceUnavailable{
		Instrument: from + "/" + to,
		Date:       date,
		Message:    "no exchange rate",
	}
}

// GetPricesInCurrency prices each instrument on date in currency. Results
// are in the same order as instruments.
func (c *Client) GetPricesInCurrency(ctx context.Context, instruments []string, currency string, date time.Time) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(instruments))
	for i, symbol := range instruments {
		info, err := c.GetStockInfo(ctx, symbol)
		if err != nil {
			return nil, err
		}
		price, err := c.GetPrice(ctx, symbol, date)
		if err != nil {
			return nil, err
		}
		if info.Currency != currency {
			rate, err := c.GetExchangeRate(ctx, info.Currency, currency, date)
			if err != nil {
				return nil, err
			}
			price = price.Mul(rate)
		}
		out[i] = price
	}
	return out, nil
}
