package ledger

import (
	"folio/internal/domain"
	"folio/internal/timeseries"

	"github.com/shopspring/decimal"
)

// snapshots have one entry per active day, so the series built here
// forward fill across the days in between

func CashSeries(snapshots []domain.Snapshot) *timeseries.Series {
	return seriesOf(snapshots, func(s domain.Snapshot) decimal.Decimal { return s.Cash })
}

// CashFlowSeries is cumulative external deposits net of withdrawals.
func CashFlowSeries(snapshots []domain.Snapshot) *timeseries.Series {
	return seriesOf(snapshots, func(s domain.Snapshot) decimal.Decimal { return s.CashFlow })
}

func HoldingSeries(snapshots []domain.Snapshot, instrument string) *timeseries.Series {
	return seriesOf(snapshots, func(s domain.Snapshot) decimal.Decimal { return s.Holding(instrument) })
}

func seriesOf(snapshots []domain.Snapshot, value func(domain.Snapshot) decimal.Decimal) *timeseries.Series {
	points := make([]timeseries.Point, len(snapshots))
	for i, s := range snapshots {
		points[i] = timeseries.Point{
			Date:  domain.FormatDay(s.Date),
			Value: value(s),
		}
	}
	return timeseries.FromPoints(points, nil)
}
