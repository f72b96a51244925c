package metrics

import (
	"fmt"

	"folio/internal/util"

	"github.com/shopspring/decimal"
)

// DailyAggregateTwr chains period returns into the cumulative growth factor
// as of each valuation date.
func DailyAggregateTwr(dailyPortfolioValues map[string]decimal.Decimal, transfers map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	dailyTwr, err := TimeWeightedReturns(dailyPortfolioValues, transfers)
	if err != nil {
		return nil, err
	}
	aggregateTwr := decimal.NewFromInt(1)
	out := map[string]decimal.Decimal{}
	for _, d := range util.SortedMapKeys(dailyTwr) {
		aggregateTwr = aggregateTwr.Mul(dailyTwr[d])
		out[d] = aggregateTwr
	}
	return out, nil
}

// TimeWeightedReturns computes the holding-period growth factor between
// consecutive valuation dates. transfers are external flows that landed in
// the period ending on their date; they are treated as arriving at its
// start so deposits are not counted as performance.
func TimeWeightedReturns(
	dailyPortfolioValues map[string]decimal.Decimal,
	transfers map[string]decimal.Decimal,
) (map[string]decimal.Decimal, error) {
	if len(dailyPortfolioValues) < 2 {
		return nil, fmt.Errorf("at least two valuations required to compute TWR, got %d", len(dailyPortfolioValues))
	}
	dateKeys := util.SortedMapKeys(dailyPortfolioValues)

	out := map[string]decimal.Decimal{}
	for i := 1; i < len(dateKeys); i++ {
		prevValue := dailyPortfolioValues[dateKeys[i-1]]
		currentValue := dailyPortfolioValues[dateKeys[i]]
		netTransfers := transfers[dateKeys[i]]

		out[dateKeys[i]] = hp(prevValue, currentValue, netTransfers)
	}

	return out, nil
}

// https://www.investopedia.com/terms/t/time-weightedror.asp
// an empty starting balance has no return to measure, so the period is
// neutral
func hp(start, end, cashFlow decimal.Decimal) decimal.Decimal {
	denominator := start.Add(cashFlow)
	if !denominator.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return end.Div(denominator)
}
