package domain

import (
	"encoding/json"
	"testing"
	"time"

	folio_errors "folio/internal"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func num(s string) *json.Number {
	n := json.Number(s)
	return &n
}

func TestStorageRoundTrip(t *testing.T) {
	created := time.UnixMilli(1561975200123).UTC()
	meta := ActivityMeta{
		ActivityID: uuid.New(),
		Date:       time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:  &created,
	}

	for _, a := range []Activity{
		Deposit{ActivityMeta: meta, Amount: dec("5000")},
		Dividend{ActivityMeta: meta, Instrument: "AAPL", Amount: dec("12.34")},
		StockDividend{ActivityMeta: meta, Instrument: "AAPL", Units: dec("5")},
		Trade{ActivityMeta: meta, Cost: dec("1587.70"), Trades: []TradeLeg{{Instrument: "AAPL", Units: dec("10")}}},
	} {
		t.Run(string(a.Type()), func(t *testing.T) {
			stored := ToStorage(a, false)
			require.Equal(t, "2019-07-01", stored.Date)
			require.Equal(t, int64(1561975200123), *stored.CreatedAt)

			back, err := FromStorage(stored)
			require.NoError(t, err)
			diff := cmp.Diff(a, back, cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) }))
			require.Empty(t, diff)
		})
	}

	t.Run("time of day is dropped", func(t *testing.T) {
		evening := Deposit{ActivityMeta: ActivityMeta{Date: time.Date(2019, 7, 1, 23, 30, 0, 0, time.UTC)}, Amount: dec("1")}
		require.Equal(t, "2019-07-01", ToStorage(evening, true).Date)
		require.True(t, ToStorage(evening, true).SkipTrigger)
	})
}

func TestFromStorage_Errors(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		_, err := FromStorage(StoredActivity{Type: "transfer", Date: "2019-07-01"})
		var unknown folio_errors.ErrUnknownActivityType
		require.ErrorAs(t, err, &unknown)
		require.Equal(t, "transfer", unknown.Type)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := FromStorage(StoredActivity{Type: ActivityType_Deposit, Date: "07/01/2019", Amount: num("1")})
		require.Error(t, err)
	})

	t.Run("missing amount", func(t *testing.T) {
		_, err := FromStorage(StoredActivity{Type: ActivityType_Deposit, Date: "2019-07-01"})
		require.Error(t, err)
	})

	t.Run("bad leg units", func(t *testing.T) {
		_, err := FromStorage(StoredActivity{
			Type:   ActivityType_Trade,
			Date:   "2019-07-01",
			Cost:   num("100"),
			Trades: []StoredTradeLeg{{Instrument: "AAPL", Units: "ten"}},
		})
		require.Error(t, err)
	})
}

func TestLabel(t *testing.T) {
	require.Equal(t, "Deposit", Label(Deposit{Amount: dec("-10")}))
	require.Equal(t, "Cash Dividend", Label(Dividend{}))
	require.Equal(t, "Stock Dividend", Label(StockDividend{}))
	require.Equal(t, "Buy", Label(Trade{Cost: dec("0")}))
	require.Equal(t, "Buy", Label(Trade{Cost: dec("10")}))
	require.Equal(t, "Sell", Label(Trade{Cost: dec("-10")}))
}

func TestSortActivities(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2019, 7, d, 0, 0, 0, 0, time.UTC) }
	at := func(ms int64) *time.Time {
		t := time.UnixMilli(ms).UTC()
		return &t
	}
	lowID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highID := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	late := Deposit{ActivityMeta: ActivityMeta{ActivityID: uuid.New(), Date: day(3), CreatedAt: at(1)}}
	firstCreated := Deposit{ActivityMeta: ActivityMeta{ActivityID: uuid.New(), Date: day(1), CreatedAt: at(100)}}
	secondCreated := Deposit{ActivityMeta: ActivityMeta{ActivityID: uuid.New(), Date: day(1), CreatedAt: at(200)}}
	tieHigh := Deposit{ActivityMeta: ActivityMeta{ActivityID: highID, Date: day(2), CreatedAt: at(5)}}
	tieLow := Deposit{ActivityMeta: ActivityMeta{ActivityID: lowID, Date: day(2), CreatedAt: at(5)}}

	activities := []Activity{late, tieHigh, secondCreated, tieLow, firstCreated}
	SortActivities(activities)

	ids := []uuid.UUID{}
	for _, a := range activities {
		ids = append(ids, a.GetID())
	}
	require.Equal(t, []uuid.UUID{
		firstCreated.ActivityID,
		secondCreated.ActivityID,
		lowID,
		highID,
		late.ActivityID,
	}, ids)
}

func TestSnapshot(t *testing.T) {
	s := EmptySnapshot(time.Date(2019, 7, 1, 15, 0, 0, 0, time.UTC))
	s.Cash = dec("3412.30")
	s.CashFlow = dec("5000")
	s.NumShares["AAPL"] = dec("10")

	t.Run("storage round trip", func(t *testing.T) {
		stored := s.ToStorage()
		require.Equal(t, StoredSnapshot{
			Date:      "2019-07-01",
			Cash:      "3412.3",
			CashFlow:  "5000",
			Dividend:  "0",
			NumShares: map[string]json.Number{"AAPL": "10"},
		}, stored)

		back, err := stored.ToDomain()
		require.NoError(t, err)
		require.True(t, s.Equal(back))
	})

	t.Run("equal is numeric", func(t *testing.T) {
		other := s.DeepCopy()
		other.Cash = dec("3412.3000")
		require.True(t, s.Equal(other))

		other.NumShares["MSFT"] = dec("0")
		require.False(t, s.Equal(other))
		require.Len(t, s.NumShares, 1)
	})

	t.Run("empty fields read as zero", func(t *testing.T) {
		back, err := StoredSnapshot{Date: "2019-07-02"}.ToDomain()
		require.NoError(t, err)
		require.True(t, back.Cash.IsZero())
		require.True(t, back.Holding("AAPL").IsZero())
	})
}

func TestCostBasisStorage(t *testing.T) {
	c, err := CostBasisFromStorage(map[string]json.Number{"AAPL": "158.77", "VTI": "200"})
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "VTI"}, c.Instruments())
	require.True(t, c.Get("AAPL").Equal(dec("158.77")))
	require.True(t, c.Get("MSFT").IsZero())
	require.Equal(t, map[string]json.Number{"AAPL": "158.77", "VTI": "200"}, c.ToStorage())

	_, err = CostBasisFromStorage(map[string]json.Number{"AAPL": "abc"})
	require.Error(t, err)
}

func TestValidateCurrency(t *testing.T) {
	require.NoError(t, ValidateCurrency("USD"))
	require.NoError(t, ValidateCurrency("EUR"))
	require.Error(t, ValidateCurrency("XYZ"))
	require.Error(t, ValidateCurrency(""))
}

func TestActivityEvent_Suppressed(t *testing.T) {
	require.False(t, ActivityEvent{}.Suppressed())
	require.False(t, ActivityEvent{Before: &StoredActivity{SkipTrigger: true}}.Suppressed())
	require.True(t, ActivityEvent{After: &StoredActivity{SkipTrigger: true}}.Suppressed())
}
