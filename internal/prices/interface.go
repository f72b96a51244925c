package prices

import "folio/internal/timeseries"

//go:generate mockgen -source=interface.go -destination=mock_interface.go -package=prices

// PriceSource fetches daily closing series from an upstream provider.
type PriceSource interface {
	GetDailyPrices(symbol string) ([]timeseries.Point, error)
	GetDailyExchangeRates(from, to string) ([]timeseries.Point, error)
}
