package market

import (
	"context"
	"errors"
	"testing"
	"time"

	folio_errors "folio/internal"
	db_utils "folio/internal/db/utils"
	"folio/internal/domain"
	"folio/internal/repository"
	"folio/internal/timeseries"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

type mocks struct {
	prices *repository.MockPriceRepository
	stocks *repository.MockStockRepository
	rates  *repository.MockExchangeRateRepository
	quotes *MockQuoteSource
}

func setup(t *testing.T) (*Client, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		prices: repository.NewMockPriceRepository(ctrl),
		stocks: repository.NewMockStockRepository(ctrl),
		rates:  repository.NewMockExchangeRateRepository(ctrl),
		quotes: NewMockQuoteSource(ctrl),
	}
	c := NewClient(&db_utils.FakeTxRunner{}, m.prices, m.stocks, m.rates, m.quotes, time.Minute, nil)
	return c, m
}

func TestClient_GetPricesInCurrency(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC)

	t.Run("forward fills and converts", func(t *testing.T) {
		c, m := setup(t)
		m.stocks.EXPECT().Get(gomock.Any(), "AAPL").Return(&domain.StockInfo{Symbol: "AAPL", Currency: "USD"}, nil)
		m.stocks.EXPECT().Get(gomock.Any(), "SAP").Return(&domain.StockInfo{Symbol: "SAP", Currency: "EUR"}, nil)
		m.prices.EXPECT().List(gomock.Any(), "AAPL").Return([]timeseries.Point{
			{Date: "2020-01-01", Value: dec(100)},
			{Date: "2020-01-02", Value: dec(110)},
		}, nil)
		m.prices.EXPECT().List(gomock.Any(), "SAP").Return([]timeseries.Point{
			{Date: "2020-01-03", Value: dec(50)},
		}, nil)
		m.rates.EXPECT().List(gomock.Any(), "EUR", "USD").Return(nil, nil)
		m.rates.EXPECT().List(gomock.Any(), "USD", "EUR").Return([]timeseries.Point{
			{Date: "2020-01-01", Value: dec(0.8)},
		}, nil)

		out, err := c.GetPricesInCurrency(ctx, []string{"AAPL", "SAP"}, "USD", date)
		require.NoError(t, err)
		require.Len(t, out, 2)
		require.True(t, dec(110).Equal(out[0]))
		require.True(t, dec(62.5).Equal(out[1]), out[1].String())
	})

	t.Run("missing prices are an error", func(t *testing.T) {
		c, m := setup(t)
		m.stocks.EXPECT().Get(gomock.Any(), "AAPL").Return(&domain.StockInfo{Symbol: "AAPL", Currency: "USD"}, nil)
		m.prices.EXPECT().List(gomock.Any(), "AAPL").Return(nil, nil)

		_, err := c.GetPricesInCurrency(ctx, []string{"AAPL"}, "USD", date)
		require.ErrorAs(t, err, &folio_errors.ErrPriceUnavailable{})
	})

	t.Run("series are cached", func(t *testing.T) {
		c, m := setup(t)
		m.stocks.EXPECT().Get(gomock.Any(), "AAPL").Return(&domain.StockInfo{Symbol: "AAPL", Currency: "USD"}, nil).Times(2)
		m.prices.EXPECT().List(gomock.Any(), "AAPL").Return([]timeseries.Point{
			{Date: "2020-01-01", Value: dec(100)},
		}, nil).Times(1)

		for i := 0; i < 2; i++ {
			_, err := c.GetPricesInCurrency(ctx, []string{"AAPL"}, "USD", date)
			require.NoError(t, err)
		}
	})

	t.Run("expired cache reloads", func(t *testing.T) {
		c, m := setup(t)
		now := date
		c.now = func() time.Time { return now }
		m.prices.EXPECT().List(gomock.Any(), "AAPL").Return([]timeseries.Point{
			{Date: "2020-01-01", Value: dec(100)},
		}, nil).Times(2)

		_, err := c.GetPrice(ctx, "AAPL", date)
		require.NoError(t, err)
		now = now.Add(2 * time.Minute)
		_, err = c.GetPrice(ctx, "AAPL", date)
		require.NoError(t, err)
	})
}

func TestClient_GetStockInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to quote and stores it", func(t *testing.T) {
		c, m := setup(t)
		m.stocks.EXPECT().Get(gomock.Any(), "SAP").Return(nil, folio_errors.ErrStockNotFound)
		m.quotes.EXPECT().Currency("SAP").Return("EUR", nil)
		m.stocks.EXPECT().Add(gomock.Any(), domain.StockInfo{Symbol: "SAP", Currency: "EUR"}).Return(nil)

		info, err := c.GetStockInfo(ctx, "SAP")
		require.NoError(t, err)
		require.Equal(t, "EUR", info.Currency)
	})

	t.Run("invalid quoted currency", func(t *testing.T) {
		c, m := setup(t)
		m.stocks.EXPECT().Get(gomock.Any(), "XYZ").Return(nil, folio_errors.ErrStockNotFound)
		m.quotes.EXPECT().Currency("XYZ").Return("???", nil)

		_, err := c.GetStockInfo(ctx, "XYZ")
		require.Error(t, err)
	})

	t.Run("repository errors are not masked", func(t *testing.T) {
		c, m := setup(t)
		dbErr := errors.New("connection reset")
		m.stocks.EXPECT().Get(gomock.Any(), "AAPL").Return(nil, dbErr)

		_, err := c.GetStockInfo(ctx, "AAPL")
		require.ErrorIs(t, err, dbErr)
	})
}

func TestClient_GetExchangeRate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC)

	c, m := setup(t)
	rate, err := c.GetExchangeRate(ctx, "USD", "USD", date)
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.NewFromInt(1)))

	m.rates.EXPECT().List(gomock.Any(), "GBP", "JPY").Return(nil, nil)
	m.rates.EXPECT().List(gomock.Any(), "JPY", "GBP").Return(nil, nil)
	_, err = c.GetExchangeRate(ctx, "GBP", "JPY", date)
	require.ErrorAs(t, err, &folio_errors.ErrPriceUnavailable{})
}
