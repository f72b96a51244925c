package metrics

import (
	"context"
	"fmt"
	"time"

	"folio/internal/domain"
	"folio/internal/util"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type FlowStats struct {
	Count  int
	Total  decimal.Decimal
	Mean   float64
	Median float64
	Stdev  float64
}

// Summary is the performance view of one portfolio as of a date.
type Summary struct {
	AsOf               time.Time
	Value              decimal.Decimal
	NetCashFlow        decimal.Decimal
	TotalDividends     decimal.Decimal
	TimeWeightedReturn decimal.Decimal // cumulative, as a fraction
	PeriodReturnMean   float64
	PeriodReturnStdev  float64
	Deposits           FlowStats
	Withdrawals        FlowStats
	UnrealizedGain     map[string]decimal.Decimal
}

// CashFlowStats summarises the net external flow of every snapshot day,
// split into deposit days and withdrawal days.
func CashFlowStats(snapshots []domain.Snapshot) (deposits FlowStats, withdrawals FlowStats, err error) {
	in, out := []decimal.Decimal{}, []decimal.Decimal{}
	prev := decimal.Zero
	for _, s := range snapshots {
		flow := s.CashFlow.Sub(prev)
		prev = s.CashFlow
		switch {
		case flow.IsPositive():
			in = append(in, flow)
		case flow.IsNegative():
			out = append(out, flow.Neg())
		}
	}

	if deposits, err = flowStats(in); err != nil {
		return FlowStats{}, FlowStats{}, err
	}
	if withdrawals, err = flowStats(out); err != nil {
		return FlowStats{}, FlowStats{}, err
	}
	return deposits, withdrawals, nil
}

func flowStats(flows []decimal.Decimal) (FlowStats, error) {
	out := FlowStats{Count: len(flows), Total: decimal.Sum(decimal.Zero, flows...)}
	if len(flows) == 0 {
		return out, nil
	}

	data := toStatsData(flows)
	var err error
	if out.Mean, err = stats.Mean(data); err != nil {
		return FlowStats{}, err
	}
	if out.Median, err = stats.Median(data); err != nil {
		return FlowStats{}, err
	}
	if len(flows) > 1 {
		if out.Stdev, err = stats.StandardDeviationSample(data); err != nil {
			return FlowStats{}, err
		}
	}
	return out, nil
}

// ReturnStats is the mean and sample standard deviation of the period
// returns, as fractions.
func ReturnStats(periodTwr map[string]decimal.Decimal) (mean float64, stdev float64, err error) {
	returns := make([]decimal.Decimal, 0, len(periodTwr))
	for _, d := range util.SortedMapKeys(periodTwr) {
		returns = append(returns, periodTwr[d].Sub(decimal.NewFromInt(1)))
	}
	if len(returns) == 0 {
		return 0, 0, nil
	}
	data := toStatsData(returns)
	if mean, err = stats.Mean(data); err != nil {
		return 0, 0, err
	}
	if len(returns) > 1 {
		if stdev, err = stats.StandardDeviationSample(data); err != nil {
			return 0, 0, err
		}
	}
	return mean, stdev, nil
}

func toStatsData(in []decimal.Decimal) stats.Float64Data {
	out := make(stats.Float64Data, len(in))
	for i, d := range in {
		out[i] = d.InexactFloat64()
	}
	return out
}

// Summarize values the latest holdings at asOf and measures performance
// across the whole snapshot history.
func Summarize(
	ctx context.Context,
	prices PriceLookup,
	portfolio domain.Portfolio,
	snapshots []domain.Snapshot,
	asOf time.Time,
) (*Summary, error) {
	out := &Summary{
		AsOf:           domain.Day(asOf),
		Value:          decimal.Zero,
		NetCashFlow:    decimal.Zero,
		TotalDividends: decimal.Zero,
		UnrealizedGain: map[string]decimal.Decimal{},
	}
	var err error
	if out.Deposits, out.Withdrawals, err = CashFlowStats(snapshots); err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		out.TimeWeightedReturn = decimal.Zero
		return out, nil
	}

	for _, s := range snapshots {
		out.TotalDividends = out.TotalDividends.Add(s.Dividend)
	}
	latest := snapshots[len(snapshots)-1]
	out.NetCashFlow = latest.CashFlow

	values, transfers, err := DailyPortfolioValues(ctx, prices, portfolio.Currency, snapshots, asOf)
	if err != nil {
		return nil, err
	}
	keys := util.SortedMapKeys(values)
	out.Value = values[keys[len(keys)-1]]

	out.TimeWeightedReturn = decimal.Zero
	if len(values) > 1 {
		periods, err := TimeWeightedReturns(values, transfers)
		if err != nil {
			return nil, err
		}
		aggregate, err := DailyAggregateTwr(values, transfers)
		if err != nil {
			return nil, err
		}
		out.TimeWeightedReturn = aggregate[keys[len(keys)-1]].Sub(decimal.NewFromInt(1))
		if out.PeriodReturnMean, out.PeriodReturnStdev, err = ReturnStats(periods); err != nil {
			return nil, err
		}
	}

	held := util.NewSet[string]()
	for instrument, units := range latest.NumShares {
		if !units.IsZero() {
			held.Add(instrument)
		}
	}
	if held.Length() > 0 {
		symbols := held.List()
		priceList, err := prices.GetPricesInCurrency(ctx, symbols, portfolio.Currency, asOf)
		if err != nil {
			return nil, err
		}
		if len(priceList) != len(symbols) {
			return nil, fmt.Errorf("expected %d prices, got %d", len(symbols), len(priceList))
		}
		for i, symbol := range symbols {
			units := latest.NumShares[symbol]
			out.UnrealizedGain[symbol] = priceList[i].Sub(portfolio.CostBasis.Get(symbol)).Mul(units)
		}
	}

	return out, nil
}
