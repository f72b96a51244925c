package resolver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	api_types "folio/api-types"
	folio_errors "folio/internal"
	"folio/internal/domain"
	"folio/internal/metrics"
	"folio/internal/queue"
	"folio/internal/service"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, today time.Time) (resolverHandler, *service.MockPortfolioService, *service.MockActivityService, *queue.MockPublisher) {
	ctrl := gomock.NewController(t)
	portfolios := service.NewMockPortfolioService(ctrl)
	activities := service.NewMockActivityService(ctrl)
	publisher := queue.NewMockPublisher(ctrl)
	return resolverHandler{
		PortfolioService: portfolios,
		ActivityService:  activities,
		Publisher:        publisher,
		now:              func() time.Time { return today },
	}, portfolios, activities, publisher
}

func TestResolver_GetSeries(t *testing.T) {
	ctx := context.Background()
	portfolioID := uuid.New()
	day := func(d int) time.Time { return time.Date(2019, 7, d, 0, 0, 0, 0, time.UTC) }

	s1 := domain.EmptySnapshot(day(1))
	s1.Cash = decimal.NewFromInt(5000)
	s1.CashFlow = decimal.NewFromInt(5000)
	s2 := domain.EmptySnapshot(day(2))
	s2.Cash = decimal.NewFromInt(1000)
	s2.CashFlow = decimal.NewFromInt(5000)
	s2.NumShares["AAPL"] = decimal.NewFromInt(25)

	t.Run("end defaults to today", func(t *testing.T) {
		r, portfolios, _, _ := newTestResolver(t, day(4).Add(15*time.Hour))
		portfolios.EXPECT().GetSnapshots(ctx, portfolioID).Return([]domain.Snapshot{s1, s2}, nil)

		out, err := r.GetSeries(ctx, portfolioID, api_types.GetSeriesRequest{Kind: api_types.SeriesKind_Cash})
		require.NoError(t, err)
		require.Equal(t, []api_types.SeriesPoint{
			{Date: "2019-07-01", Value: "5000"},
			{Date: "2019-07-02", Value: "1000"},
			{Date: "2019-07-03", Value: "1000"},
			{Date: "2019-07-04", Value: "1000"},
		}, out.Points)
	})

	t.Run("cash flow", func(t *testing.T) {
		r, portfolios, _, _ := newTestResolver(t, day(4))
		portfolios.EXPECT().GetSnapshots(ctx, portfolioID).Return([]domain.Snapshot{s1, s2}, nil)

		out, err := r.GetSeries(ctx, portfolioID, api_types.GetSeriesRequest{Kind: api_types.SeriesKind_CashFlow, End: "2019-07-02"})
		require.NoError(t, err)
		require.Equal(t, []api_types.SeriesPoint{
			{Date: "2019-07-01", Value: "5000"},
			{Date: "2019-07-02", Value: "5000"},
		}, out.Points)
	})

	t.Run("bad end date", func(t *testing.T) {
		r, _, _, _ := newTestResolver(t, day(4))
		_, err := r.GetSeries(ctx, portfolioID, api_types.GetSeriesRequest{Kind: api_types.SeriesKind_Cash, End: "07/02/2019"})
		require.ErrorIs(t, err, folio_errors.ErrInvalidRequest)
	})

	t.Run("range too long", func(t *testing.T) {
		r, portfolios, _, _ := newTestResolver(t, day(4))
		portfolios.EXPECT().GetSnapshots(ctx, portfolioID).Return([]domain.Snapshot{s1}, nil)

		_, err := r.GetSeries(ctx, portfolioID, api_types.GetSeriesRequest{Kind: api_types.SeriesKind_Cash, End: "2200-01-01"})
		require.ErrorIs(t, err, folio_errors.ErrInvalidRequest)
	})
}

func TestResolver_GetSummary(t *testing.T) {
	ctx := context.Background()
	portfolioID := uuid.New()
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("maps decimals to numbers", func(t *testing.T) {
		r, portfolios, _, _ := newTestResolver(t, today)
		portfolios.EXPECT().GetSummary(ctx, portfolioID, today).Return(&metrics.Summary{
			AsOf:               today,
			Value:              decimal.RequireFromString("1700.50"),
			NetCashFlow:        decimal.NewFromInt(1500),
			TotalDividends:     decimal.Zero,
			TimeWeightedReturn: decimal.RequireFromString("0.1336"),
			Deposits:           metrics.FlowStats{Count: 2, Total: decimal.NewFromInt(1500), Mean: 750, Median: 750},
			Withdrawals:        metrics.FlowStats{Total: decimal.Zero},
			UnrealizedGain:     map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(200)},
		}, nil)

		out, err := r.GetSummary(ctx, portfolioID, "")
		require.NoError(t, err)
		require.Equal(t, "2024-03-01", out.AsOf)
		require.Equal(t, json.Number("1700.5"), out.Value)
		require.Equal(t, json.Number("0.1336"), out.TimeWeightedReturn)
		require.Equal(t, 2, out.Deposits.Count)
		require.Equal(t, json.Number("1500"), out.Deposits.Total)
		require.Equal(t, json.Number("0"), out.Withdrawals.Total)
		require.Equal(t, map[string]json.Number{"AAPL": "200"}, out.UnrealizedGain)
	})

	t.Run("explicit as-of", func(t *testing.T) {
		r, portfolios, _, _ := newTestResolver(t, today)
		asOf := time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC)
		portfolios.EXPECT().GetSummary(ctx, portfolioID, asOf).Return(&metrics.Summary{AsOf: asOf}, nil)

		out, err := r.GetSummary(ctx, portfolioID, "2023-12-29")
		require.NoError(t, err)
		require.Equal(t, "2023-12-29", out.AsOf)
		require.Empty(t, out.UnrealizedGain)
	})
}

func TestResolver_RequestRebuild(t *testing.T) {
	ctx := context.Background()
	portfolioID := uuid.New()

	t.Run("publishes a rebuild event", func(t *testing.T) {
		r, portfolios, _, publisher := newTestResolver(t, time.Now())
		portfolios.EXPECT().Get(ctx, portfolioID).Return(&domain.Portfolio{PortfolioID: portfolioID}, nil)
		publisher.EXPECT().Publish(ctx, domain.ActivityEvent{PortfolioID: portfolioID}).Return(nil)

		require.NoError(t, r.RequestRebuild(ctx, portfolioID))
	})

	t.Run("unknown portfolio", func(t *testing.T) {
		r, portfolios, _, _ := newTestResolver(t, time.Now())
		portfolios.EXPECT().Get(ctx, portfolioID).Return(nil, folio_errors.ErrPortfolioNotFound)

		err := r.RequestRebuild(ctx, portfolioID)
		require.ErrorIs(t, err, folio_errors.ErrPortfolioNotFound)
	})
}

func TestResolver_Activities(t *testing.T) {
	ctx := context.Background()
	portfolioID := uuid.New()

	t.Run("client timestamps are dropped", func(t *testing.T) {
		r, _, activities, _ := newTestResolver(t, time.Now())
		ms := int64(1562000000000)
		in := domain.StoredActivity{Type: domain.ActivityType_Deposit, Date: "2019-07-01", CreatedAt: &ms, UpdatedAt: &ms}
		expected := in
		expected.CreatedAt = nil
		expected.UpdatedAt = nil
		activities.EXPECT().Create(ctx, portfolioID, expected).Return(&expected, nil)

		_, err := r.CreateActivity(ctx, portfolioID, in)
		require.NoError(t, err)
	})

	t.Run("update needs an id", func(t *testing.T) {
		r, _, _, _ := newTestResolver(t, time.Now())
		_, err := r.UpdateActivity(ctx, portfolioID, domain.StoredActivity{Type: domain.ActivityType_Deposit})
		require.ErrorIs(t, err, folio_errors.ErrInvalidRequest)
	})

	t.Run("empty list", func(t *testing.T) {
		r, _, activities, _ := newTestResolver(t, time.Now())
		activities.EXPECT().List(ctx, portfolioID).Return(nil, nil)

		out, err := r.ListActivities(ctx, portfolioID)
		require.NoError(t, err)
		require.NotNil(t, out.Activities)
		require.Empty(t, out.Activities)
	})
}
