package snapshot

import (
	"testing"

	"folio/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []domain.Snapshot {
	out := make([]domain.Snapshot, n)
	for i := range out {
		out[i] = domain.Snapshot{
			Date:      day1.AddDate(0, 0, i),
			Cash:      dec(float64(i)),
			CashFlow:  dec(float64(i * 2)),
			Dividend:  decimal.Zero,
			NumShares: map[string]decimal.Decimal{"AAPL": dec(float64(i))},
		}
	}
	return out
}

func TestBatch(t *testing.T) {
	t.Run("partitions with bounds", func(t *testing.T) {
		batches := Batch(sequence(45), 20)
		require.Len(t, batches, 3)
		require.Len(t, batches[0].Snapshots, 20)
		require.Len(t, batches[1].Snapshots, 20)
		require.Len(t, batches[2].Snapshots, 5)
		require.Equal(t, day1, batches[0].StartDate)
		require.Equal(t, day1.AddDate(0, 0, 19), batches[0].EndDate)
		require.Equal(t, day1.AddDate(0, 0, 40), batches[2].StartDate)
		require.Equal(t, day1.AddDate(0, 0, 44), batches[2].EndDate)
	})

	t.Run("empty sequence gives one batch", func(t *testing.T) {
		batches := Batch(nil, 20)
		require.Len(t, batches, 1)
		require.Empty(t, batches[0].Snapshots)
		require.True(t, batches[0].StartDate.IsZero())
	})

	t.Run("single snapshot", func(t *testing.T) {
		batches := Batch(sequence(1), 20)
		require.Len(t, batches, 1)
		require.Equal(t, batches[0].StartDate, batches[0].EndDate)
	})

	t.Run("invalid size falls back to default", func(t *testing.T) {
		require.Len(t, Batch(sequence(41), 0), 3)
	})
}

func TestUnbatch_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 19, 20, 21, 100} {
		for _, size := range []int{1, 3, 20, 200} {
			s := sequence(n)
			out := Unbatch(Batch(s, size))
			require.Equal(t, "", cmp.Diff(s, out, decimalComparer), "n=%d size=%d", n, size)
		}
	}
}
