// Package metrics derives performance figures from a portfolio's snapshot
// history.
package metrics

import (
	"context"
	"fmt"
	"time"

	"folio/internal/domain"
	"folio/internal/util"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=value.go -destination=mock_value.go -package=metrics

type PriceLookup interface {
	GetPricesInCurrency(ctx context.Context, instruments []string, currency string, date time.Time) ([]decimal.Decimal, error)
}

// PortfolioValue is cash plus every holding at its price on date.
func PortfolioValue(ctx context.Context, prices PriceLookup, currency string, s domain.Snapshot, date time.Time) (decimal.Decimal, error) {
	held := util.NewSet[string]()
	for instrument, units := range s.NumShares {
		if !units.IsZero() {
			held.Add(instrument)
		}
	}
	if held.Length() == 0 {
		return s.Cash, nil
	}

	symbols := held.List()
	priceList, err := prices.GetPricesInCurrency(ctx, symbols, currency, date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to value holdings on %s: %w", domain.FormatDay(date), err)
	}
	if len(priceList) != len(symbols) {
		return decimal.Zero, fmt.Errorf("expected %d prices, got %d", len(symbols), len(priceList))
	}

	value := s.Cash
	for i, symbol := range symbols {
		value = value.Add(priceList[i].Mul(s.NumShares[symbol]))
	}
	return value, nil
}

// DailyPortfolioValues values the portfolio at every snapshot date, plus at
// asOf when it is later than the last snapshot. Transfers are the change in
// cumulative cash flow since the previous snapshot, keyed the same way.
func DailyPortfolioValues(
	ctx context.Context,
	prices PriceLookup,
	currency string,
	snapshots []domain.Snapshot,
	asOf time.Time,
) (values map[string]decimal.Decimal, transfers map[string]decimal.Decimal, err error) {
	values = map[string]decimal.Decimal{}
	transfers = map[string]decimal.Decimal{}

	prevFlow := decimal.Zero
	for _, s := range snapshots {
		key := domain.FormatDay(s.Date)
		values[key], err = PortfolioValue(ctx, prices, currency, s, s.Date)
		if err != nil {
			return nil, nil, err
		}
		if flow := s.CashFlow.Sub(prevFlow); !flow.IsZero() {
			transfers[key] = flow
		}
		prevFlow = s.CashFlow
	}

	if len(snapshots) > 0 {
		last := snapshots[len(snapshots)-1]
		if domain.Day(asOf).After(domain.Day(last.Date)) {
			key := domain.FormatDay(asOf)
			values[key], err = PortfolioValue(ctx, prices, currency, last, asOf)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	return values, transfers, nil
}
