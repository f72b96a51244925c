package ledger

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	folio_errors "folio/internal"
	"folio/internal/config"
	"folio/internal/costbasis"
	db_utils "folio/internal/db/utils"
	"folio/internal/domain"
	"folio/internal/repository"
	"folio/internal/snapshot"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	today = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day1  = time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC)
	day2  = time.Date(2019, 7, 2, 0, 0, 0, 0, time.UTC)
	day3  = time.Date(2019, 7, 3, 0, 0, 0, 0, time.UTC)
	day4  = time.Date(2019, 7, 4, 0, 0, 0, 0, time.UTC)
)

func requireDec(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

// seq orders same-day activities
func meta(date time.Time, seq int) domain.ActivityMeta {
	createdAt := date.Add(time.Duration(seq) * time.Second)
	return domain.ActivityMeta{ActivityID: uuid.New(), Date: date, CreatedAt: &createdAt}
}

func deposit(date time.Time, seq int, amount string) domain.Deposit {
	return domain.Deposit{ActivityMeta: meta(date, seq), Amount: decimal.RequireFromString(amount)}
}

func trade(date time.Time, seq int, instrument string, units, cost string) domain.Trade {
	return domain.Trade{
		ActivityMeta: meta(date, seq),
		Trades:       []domain.TradeLeg{{Instrument: instrument, Units: decimal.RequireFromString(units)}},
		Cost:         decimal.RequireFromString(cost),
	}
}

func storedList(activities ...domain.Activity) []domain.StoredActivity {
	out := make([]domain.StoredActivity, len(activities))
	for i, a := range activities {
		out[i] = domain.ToStorage(a, false)
	}
	return out
}

func storedPtr(a domain.Activity) *domain.StoredActivity {
	s := domain.ToStorage(a, false)
	return &s
}

func latestOf(activities ...domain.Activity) *domain.Snapshot {
	if len(activities) == 0 {
		return nil
	}
	s := snapshot.Before(activities, len(activities), today)
	return &s
}

type fixture struct {
	coordinator *Coordinator
	txRunner    *db_utils.FakeTxRunner
	portfolios  *repository.MockPortfolioRepository
	activities  *repository.MockActivityRepository
	batches     *repository.MockSnapshotBatchRepository
	prices      *costbasis.MockPriceLookup
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		txRunner:   &db_utils.FakeTxRunner{},
		portfolios: repository.NewMockPortfolioRepository(ctrl),
		activities: repository.NewMockActivityRepository(ctrl),
		batches:    repository.NewMockSnapshotBatchRepository(ctrl),
		prices:     costbasis.NewMockPriceLookup(ctrl),
	}
	f.coordinator = NewCoordinator(
		f.txRunner,
		f.portfolios,
		f.activities,
		f.batches,
		f.prices,
		config.LedgerConfig{BatchSize: 2, MaxAttempts: 3},
		nil,
	)
	f.coordinator.now = func() time.Time { return today }
	return f
}

// expectCommit captures the derived state written for portfolio p.
func (f fixture) expectCommit(p domain.Portfolio, state *domain.DerivedState, batches *[]domain.SnapshotBatch) {
	f.batches.EXPECT().DeleteAll(gomock.Any(), p.PortfolioID).Return(nil)
	f.batches.EXPECT().Add(gomock.Any(), p.PortfolioID, gomock.Any()).DoAndReturn(
		func(_ *sql.Tx, _ uuid.UUID, in []domain.SnapshotBatch) error {
			if batches != nil {
				*batches = in
			}
			return nil
		},
	)
	f.portfolios.EXPECT().UpdateDerived(gomock.Any(), p.PortfolioID, p.Version, gomock.Any()).DoAndReturn(
		func(_ *sql.Tx, _ uuid.UUID, _ int64, in domain.DerivedState) error {
			*state = in
			return nil
		},
	)
}

func portfolio(costBasis domain.CostBasis, latest *domain.Snapshot) domain.Portfolio {
	return domain.Portfolio{
		PortfolioID:    uuid.New(),
		UserID:         uuid.New(),
		Currency:       "USD",
		CostBasis:      costBasis,
		LatestSnapshot: latest,
		Version:        3,
	}
}

func TestCoordinator_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("new trade at the end of the ledger", func(t *testing.T) {
		f := newFixture(t)
		d := deposit(day1, 0, "5000")
		buy := trade(day1, 1, "AAPL", "10", "1587.70")
		p := portfolio(domain.CostBasis{}, latestOf(d))

		f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil)
		f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return(storedList(d, buy), nil)
		var state domain.DerivedState
		var batches []domain.SnapshotBatch
		f.expectCommit(p, &state, &batches)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{
			PortfolioID: p.PortfolioID,
			ActivityID:  buy.ActivityID,
			After:       storedPtr(buy),
		})
		require.NoError(t, err)

		requireDec(t, "158.77", state.CostBasis["AAPL"])
		require.NotNil(t, state.ActivitiesStartDate)
		require.True(t, domain.SameDay(day1, *state.ActivitiesStartDate))
		require.NotNil(t, state.LatestSnapshot)
		requireDec(t, "3412.30", state.LatestSnapshot.Cash)
		requireDec(t, "5000", state.LatestSnapshot.CashFlow)
		requireDec(t, "10", state.LatestSnapshot.Holding("AAPL"))

		require.Len(t, batches, 1)
		require.Len(t, batches[0].Snapshots, 1)
		require.True(t, state.LatestSnapshot.Equal(batches[0].Snapshots[0]))
		require.Equal(t, 1, f.txRunner.Calls)
	})

	t.Run("suppressed event does nothing", func(t *testing.T) {
		f := newFixture(t)
		buy := trade(day1, 0, "AAPL", "10", "1000")
		after := domain.ToStorage(buy, true)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{
			PortfolioID: uuid.New(),
			ActivityID:  buy.ActivityID,
			After:       &after,
		})
		require.NoError(t, err)
		require.Equal(t, 0, f.txRunner.Calls)
	})

	t.Run("missing portfolio is acknowledged", func(t *testing.T) {
		f := newFixture(t)
		portfolioID := uuid.New()
		f.portfolios.EXPECT().Get(gomock.Any(), portfolioID).Return(nil, folio_errors.ErrPortfolioNotFound)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{PortfolioID: portfolioID, ActivityID: uuid.New()})
		require.NoError(t, err)
	})

	t.Run("conflict retries with fresh reads", func(t *testing.T) {
		f := newFixture(t)
		d := deposit(day1, 0, "100")
		p := portfolio(domain.CostBasis{}, nil)

		f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil).Times(2)
		f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return(storedList(d), nil).Times(2)
		f.batches.EXPECT().DeleteAll(gomock.Any(), p.PortfolioID).Return(nil).Times(2)
		f.batches.EXPECT().Add(gomock.Any(), p.PortfolioID, gomock.Any()).Return(nil).Times(2)
		gomock.InOrder(
			f.portfolios.EXPECT().UpdateDerived(gomock.Any(), p.PortfolioID, p.Version, gomock.Any()).
				Return(folio_errors.ErrConcurrentModification),
			f.portfolios.EXPECT().UpdateDerived(gomock.Any(), p.PortfolioID, p.Version, gomock.Any()).
				Return(nil),
		)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{
			PortfolioID: p.PortfolioID,
			ActivityID:  d.ActivityID,
			After:       storedPtr(d),
		})
		require.NoError(t, err)
		require.Equal(t, 2, f.txRunner.Calls)
	})

	t.Run("retries are bounded", func(t *testing.T) {
		f := newFixture(t)
		p := portfolio(domain.CostBasis{}, nil)

		f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil).Times(3)
		f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return(nil, nil).Times(3)
		f.batches.EXPECT().DeleteAll(gomock.Any(), p.PortfolioID).Return(nil).Times(3)
		f.batches.EXPECT().Add(gomock.Any(), p.PortfolioID, gomock.Any()).Return(nil).Times(3)
		f.portfolios.EXPECT().UpdateDerived(gomock.Any(), p.PortfolioID, p.Version, gomock.Any()).
			Return(folio_errors.ErrConcurrentModification).Times(3)

		err := f.coordinator.Rebuild(ctx, p.PortfolioID)
		require.Error(t, err)
		require.ErrorIs(t, err, folio_errors.ErrConcurrentModification)
		var exhausted folio_errors.ErrRetriesExhausted
		require.True(t, errors.As(err, &exhausted))
		require.Equal(t, 3, exhausted.Attempts)
		require.Equal(t, 3, f.txRunner.Calls)
	})

	t.Run("deleting the only activity clears derived state", func(t *testing.T) {
		f := newFixture(t)
		buy := trade(day1, 0, "AAPL", "10", "1000")
		p := portfolio(domain.CostBasis{"AAPL": decimal.NewFromInt(100)}, latestOf(buy))

		f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil)
		f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return([]domain.StoredActivity{}, nil)
		var state domain.DerivedState
		var batches []domain.SnapshotBatch
		f.expectCommit(p, &state, &batches)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{
			PortfolioID: p.PortfolioID,
			ActivityID:  buy.ActivityID,
			Before:      storedPtr(buy),
		})
		require.NoError(t, err)

		require.Nil(t, state.ActivitiesStartDate)
		require.Nil(t, state.LatestSnapshot)
		require.True(t, state.CostBasis.Get("AAPL").IsZero())
		require.Len(t, batches, 1)
		require.Empty(t, batches[0].Snapshots)
	})

	t.Run("edit at the end of the ledger does not reprice history", func(t *testing.T) {
		f := newFixture(t)
		d := deposit(day1, 0, "10000")
		basket := domain.Trade{
			ActivityMeta: meta(day1, 1),
			Trades: []domain.TradeLeg{
				{Instrument: "AAPL", Units: decimal.NewFromInt(10)},
				{Instrument: "MSFT", Units: decimal.NewFromInt(10)},
			},
			Cost: decimal.NewFromInt(3000),
		}
		before := trade(day2, 0, "AAPL", "10", "1000")
		after := before
		after.Cost = decimal.NewFromInt(3000)

		// AAPL 10 @ 100 from the basket, then 10 @ 100 from before
		p := portfolio(domain.CostBasis{"AAPL": decimal.NewFromInt(100), "MSFT": decimal.NewFromInt(200)}, latestOf(d, basket, before))

		f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil)
		f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return(storedList(d, basket, after), nil)
		var state domain.DerivedState
		f.expectCommit(p, &state, nil)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{
			PortfolioID: p.PortfolioID,
			ActivityID:  after.ActivityID,
			Before:      storedPtr(before),
			After:       storedPtr(after),
		})
		require.NoError(t, err)

		requireDec(t, "200", state.CostBasis["AAPL"])
		requireDec(t, "200", state.CostBasis["MSFT"])
		requireDec(t, "4000", state.LatestSnapshot.Cash)
	})

	t.Run("insert in the middle of history replays", func(t *testing.T) {
		f := newFixture(t)
		d := deposit(day1, 0, "10000")
		first := trade(day1, 1, "AAPL", "10", "1000")
		sell := trade(day3, 0, "AAPL", "-10", "-1500")
		last := trade(day4, 0, "AAPL", "10", "2000")
		p := portfolio(domain.CostBasis{"AAPL": decimal.NewFromInt(200)}, latestOf(d, first, sell, last))

		inserted := trade(day2, 0, "AAPL", "10", "4000")

		f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil)
		f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return(storedList(d, first, inserted, sell, last), nil)
		var state domain.DerivedState
		f.expectCommit(p, &state, nil)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{
			PortfolioID: p.PortfolioID,
			ActivityID:  inserted.ActivityID,
			After:       storedPtr(inserted),
		})
		require.NoError(t, err)

		// 20 @ 250, sell 10, then 10 more at 200
		requireDec(t, "225", state.CostBasis["AAPL"])
	})

	t.Run("redelivered event is idempotent", func(t *testing.T) {
		f := newFixture(t)
		d := deposit(day1, 0, "5000")
		buy := trade(day1, 1, "AAPL", "10", "1587.70")
		p := portfolio(domain.CostBasis{"AAPL": decimal.RequireFromString("158.77")}, latestOf(d, buy))

		f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil)
		f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return(storedList(d, buy), nil)
		var state domain.DerivedState
		f.expectCommit(p, &state, nil)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{
			PortfolioID: p.PortfolioID,
			ActivityID:  buy.ActivityID,
			After:       storedPtr(buy),
		})
		require.NoError(t, err)

		requireDec(t, "158.77", state.CostBasis["AAPL"])
		require.True(t, p.LatestSnapshot.Equal(*state.LatestSnapshot))
	})

	t.Run("price failure aborts without committing", func(t *testing.T) {
		f := newFixture(t)
		basket := domain.Trade{
			ActivityMeta: meta(day1, 0),
			Trades: []domain.TradeLeg{
				{Instrument: "AAPL", Units: decimal.NewFromInt(1)},
				{Instrument: "MSFT", Units: decimal.NewFromInt(1)},
			},
			Cost: decimal.NewFromInt(300),
		}
		p := portfolio(domain.CostBasis{}, nil)
		priceErr := folio_errors.ErrPriceUnavailable{Instrument: "MSFT", Date: day1}

		f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil)
		f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return(storedList(basket), nil)
		f.prices.EXPECT().GetPricesInCurrency(gomock.Any(), []string{"AAPL", "MSFT"}, "USD", day1).Return(nil, priceErr)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{
			PortfolioID: p.PortfolioID,
			ActivityID:  basket.ActivityID,
			After:       storedPtr(basket),
		})
		require.Error(t, err)
		require.ErrorIs(t, err, priceErr)
		require.Equal(t, 1, f.txRunner.Calls)
	})

	t.Run("unreadable stored activities are skipped", func(t *testing.T) {
		f := newFixture(t)
		d := deposit(day1, 0, "100")
		p := portfolio(domain.CostBasis{}, nil)
		unknown := domain.StoredActivity{ID: uuid.New(), Type: "transfer", Date: "2019-07-02"}

		f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil)
		f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return(append(storedList(d), unknown), nil)
		var state domain.DerivedState
		f.expectCommit(p, &state, nil)

		err := f.coordinator.Handle(ctx, domain.ActivityEvent{
			PortfolioID: p.PortfolioID,
			ActivityID:  d.ActivityID,
			After:       storedPtr(d),
		})
		require.NoError(t, err)
		require.True(t, domain.SameDay(day1, state.LatestSnapshot.Date))
		requireDec(t, "100", state.LatestSnapshot.Cash)
	})
}

func TestCoordinator_Rebuild(t *testing.T) {
	f := newFixture(t)
	d := deposit(day1, 0, "10000")
	basket := domain.Trade{
		ActivityMeta: meta(day1, 1),
		Trades: []domain.TradeLeg{
			{Instrument: "AAPL", Units: decimal.NewFromInt(10)},
			{Instrument: "MSFT", Units: decimal.NewFromInt(5)},
		},
		Cost: decimal.NewFromInt(2000),
	}
	sd := domain.StockDividend{ActivityMeta: meta(day2, 0), Instrument: "MSFT", Units: decimal.NewFromInt(5)}
	p := portfolio(domain.CostBasis{"AAPL": decimal.NewFromInt(1)}, nil)

	f.portfolios.EXPECT().Get(gomock.Any(), p.PortfolioID).Return(&p, nil)
	f.activities.EXPECT().List(gomock.Any(), p.PortfolioID).Return(storedList(d, basket, sd), nil)
	f.prices.EXPECT().GetPricesInCurrency(gomock.Any(), []string{"AAPL", "MSFT"}, "USD", day1).
		Return([]decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(200)}, nil)
	var state domain.DerivedState
	var batches []domain.SnapshotBatch
	f.expectCommit(p, &state, &batches)

	require.NoError(t, f.coordinator.Rebuild(context.Background(), p.PortfolioID))

	requireDec(t, "100", state.CostBasis["AAPL"])
	requireDec(t, "100", state.CostBasis["MSFT"])
	requireDec(t, "10", state.LatestSnapshot.Holding("MSFT"))
	require.Len(t, batches, 1)
	require.Len(t, snapshot.Unbatch(batches), 2)
}
