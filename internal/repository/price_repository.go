package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	folio_errors "folio/internal"
	"folio/internal/db/models/postgres/public/model"
	. "folio/internal/db/models/postgres/public/table"
	"folio/internal/domain"
	"folio/internal/timeseries"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=price_repository.go -destination=mock_price_repository.go -package=repository

type PriceRepository interface {
	// Replace makes points the entire stored series for symbol.
	Replace(tx *sql.Tx, symbol string, points []timeseries.Point) error
	List(tx *sql.Tx, symbol string) ([]timeseries.Point, error)
}

type StockRepository interface {
	Add(tx *sql.Tx, stock domain.StockInfo) error
	Get(tx *sql.Tx, symbol string) (*domain.StockInfo, error)
	List(tx *sql.Tx) ([]domain.StockInfo, error)
}

type ExchangeRateRepository interface {
	Replace(tx *sql.Tx, from, to string, points []timeseries.Point) error
	List(tx *sql.Tx, from, to string) ([]timeseries.Point, error)
}

type priceRepositoryHandler struct{}

func NewPriceRepository() PriceRepository {
	return priceRepositoryHandler{}
}

func (h priceRepositoryHandler) Replace(tx *sql.Tx, symbol string, points []timeseries.Point) error {
	_, err := Price.DELETE().
		WHERE(Price.Symbol.EQ(String(symbol))).
		Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to delete prices for %s: %w", symbol, err)
	}
	if len(points) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]model.Price, len(points))
	for i, p := range points {
		date, err := domain.ParseDay(p.Date)
		if err != nil {
			return fmt.Errorf("failed to parse price date for %s: %w", symbol, err)
		}
		models[i] = model.Price{
			Symbol:    symbol,
			Date:      date,
			Price:     p.Value,
			UpdatedAt: now,
		}
	}

	stmt := Price.INSERT(Price.AllColumns).
		MODELS(models)

	_, err = stmt.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to insert prices for %s: %w", symbol, err)
	}
	return nil
}

func (h priceRepositoryHandler) List(tx *sql.Tx, symbol string) ([]timeseries.Point, error) {
	query := Price.SELECT(Price.AllColumns).
		WHERE(Price.Symbol.EQ(String(symbol))).
		ORDER_BY(Price.Date.ASC())

	results := []model.Price{}
	err := query.Query(tx, &results)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list prices for %s: %w", symbol, err)
	}

	out := make([]timeseries.Point, len(results))
	for i, r := range results {
		out[i] = point(r.Date, r.Price)
	}
	return out, nil
}

type stockRepositoryHandler struct{}

func NewStockRepository() StockRepository {
	return stockRepositoryHandler{}
}

func (h stockRepositoryHandler) Add(tx *sql.Tx, stock domain.StockInfo) error {
	stmt := Stock.INSERT(Stock.AllColumns).
		MODEL(model.Stock{
			Symbol:   stock.Symbol,
			Currency: stock.Currency,
		}).
		ON_CONFLICT(Stock.Symbol).
		DO_UPDATE(
			SET(Stock.Currency.SET(Stock.EXCLUDED.Currency)),
		)

	_, err := stmt.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to insert stock %s: %w", stock.Symbol, err)
	}
	return nil
}

func (h stockRepositoryHandler) Get(tx *sql.Tx, symbol string) (*domain.StockInfo, error) {
	query := Stock.SELECT(Stock.AllColumns).
		WHERE(Stock.Symbol.EQ(String(symbol)))

	var result model.Stock
	err := query.Query(tx, &result)
	if err != nil && errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", folio_errors.ErrStockNotFound, symbol)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get stock %s: %w", symbol, err)
	}

	return &domain.StockInfo{
		Symbol:   result.Symbol,
		Currency: result.Currency,
	}, nil
}

func (h stockRepositoryHandler) List(tx *sql.Tx) ([]domain.StockInfo, error) {
	query := Stock.SELECT(Stock.AllColumns).
		ORDER_BY(Stock.Symbol.ASC())

	results := []model.Stock{}
	err := query.Query(tx, &results)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	out := make([]domain.StockInfo, len(results))
	for i, r := range results {
		out[i] = domain.StockInfo{Symbol: r.Symbol, Currency: r.Currency}
	}
	return out, nil
}

type exchangeRateRepositoryHandler struct{}

func NewExchangeRateRepository() ExchangeRateRepository {
	return exchangeRateRepositoryHandler{}
}

func (h exchangeRateRepositoryHandler) Replace(tx *sql.Tx, from, to string, points []timeseries.Point) error {
	t := ExchangeRate
	_, err := t.DELETE().
		WHERE(AND(
			t.FromCurrency.EQ(String(from)),
			t.ToCurrency.EQ(String(to)),
		)).
		Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to delete exchange rates for %s/%s: %w", from, to, err)
	}
	if len(points) == 0 {
		return nil
	}

	models := make([]model.ExchangeRate, len(points))
	for i, p := range points {
		date, err := domain.ParseDay(p.Date)
		if err != nil {
			return fmt.Errorf("failed to parse exchange rate date for %s/%s: %w", from, to, err)
		}
		models[i] = model.ExchangeRate{
			FromCurrency: from,
			ToCurrency:   to,
			Date:         date,
			Rate:         p.Value,
		}
	}

	_, err = t.INSERT(t.AllColumns).
		MODELS(models).
		Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to insert exchange rates for %s/%s: %w", from, to, err)
	}
	return nil
}

func (h exchangeRateRepositoryHandler) List(tx *sql.Tx, from, to string) ([]timeseries.Point, error) {
	t := ExchangeRate
	query := t.SELECT(t.AllColumns).
		WHERE(AND(
			t.FromCurrency.EQ(String(from)),
			t.ToCurrency.EQ(String(to)),
		)).
		ORDER_BY(t.Date.ASC())

	results := []model.ExchangeRate{}
	err := query.Query(tx, &results)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list exchange rates for %s/%s: %w", from, to, err)
	}

	out := make([]timeseries.Point, len(results))
	for i, r := range results {
		out[i] = point(r.Date, r.Rate)
	}
	return out, nil
}

func point(date time.Time, value decimal.Decimal) timeseries.Point {
	return timeseries.Point{
		Date:  domain.FormatDay(domain.Day(date)),
		Value: value,
	}
}
