package market

import (
	"fmt"

	"github.com/piquette/finance-go/equity"
)

//go:generate mockgen -source=quote.go -destination=mock_quote.go -package=market

// QuoteSource looks up live instrument metadata.
type QuoteSource interface {
	Currency(symbol string) (string, error)
}

type yahooQuoteSource struct{}

func NewYahooQuoteSource() QuoteSource {
	return yahooQuoteSource{}
}

func (yahooQuoteSource) Currency(symbol string) (string, error) {
	q, err := equity.Get(symbol)
	if err != nil {
		return "", err
	}
	if q == nil || q.CurrencyID == "" {
		return "", fmt.Errorf("no quote currency for %s", symbol)
	}
	return q.CurrencyID, nil
}
