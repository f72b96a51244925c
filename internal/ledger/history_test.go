package ledger

import (
	"testing"

	"folio/internal/domain"
	"folio/internal/snapshot"

	"github.com/stretchr/testify/require"
)

func TestHistorySeries(t *testing.T) {
	snapshots := snapshot.Build([]domain.Activity{
		deposit(day1, 0, "1000"),
		trade(day1, 1, "AAPL", "5", "500"),
		deposit(day3, 0, "250"),
		trade(day4, 0, "AAPL", "-2", "-300"),
	}, today, nil)
	require.Len(t, snapshots, 3)

	cash := CashSeries(snapshots)
	requireDec(t, "500", cash.Get(day1))
	requireDec(t, "500", cash.Get(day2))
	requireDec(t, "750", cash.Get(day3))
	requireDec(t, "1050", cash.Get(day4))

	flows := CashFlowSeries(snapshots)
	requireDec(t, "1000", flows.Get(day2))
	requireDec(t, "1250", flows.Get(day4))

	aapl := HoldingSeries(snapshots, "AAPL")
	requireDec(t, "5", aapl.Get(day2))
	requireDec(t, "3", aapl.Get(day4))

	require.Equal(t, 3, HoldingSeries(snapshots, "MSFT").Len())
	require.True(t, HoldingSeries(snapshots, "MSFT").Last().IsZero())
}
