package prices

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"folio/internal/logging"
	"folio/internal/timeseries"

	"github.com/PaesslerAG/jsonpath"
	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

const alphaVantageEndpoint = "https://www.alphavantage.co/query"

var ErrRateLimited = errors.New("alpha vantage rate limit hit")

type AlphaVantageClient struct {
	HttpClient *http.Client
	ApiKey     string
	// BaseURL defaults to the public endpoint.
	BaseURL        string
	RateLimitWait  time.Duration
	MaxRateRetries int
	Logger         *log.Logger
}

func NewAlphaVantageClient(apiKey string, logger *log.Logger) AlphaVantageClient {
	return AlphaVantageClient{
		HttpClient:     &http.Client{Timeout: 30 * time.Second},
		ApiKey:         apiKey,
		BaseURL:        alphaVantageEndpoint,
		RateLimitWait:  time.Minute,
		MaxRateRetries: 3,
		Logger:         logging.OrSilent(logger),
	}
}

func (c AlphaVantageClient) GetDailyPrices(symbol string) ([]timeseries.Point, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", "compact")
	return c.getSeries(params, "Time Series (Daily)")
}

func (c AlphaVantageClient) GetDailyExchangeRates(from, to string) ([]timeseries.Point, error) {
	params := url.Values{}
	params.Set("function", "FX_DAILY")
	params.Set("from_symbol", from)
	params.Set("to_symbol", to)
	params.Set("outputsize", "compact")
	return c.getSeries(params, "Time Series FX (Daily)")
}

func (c AlphaVantageClient) getSeries(params url.Values, seriesKey string) ([]timeseries.Point, error) {
	for attempt := 0; ; attempt++ {
		body, err := c.query(params)
		if err != nil {
			return nil, err
		}

		points, err := parseSeries(body, seriesKey)
		if errors.Is(err, ErrRateLimited) && attempt < c.MaxRateRetries {
			c.logger().Warn().
				Str("function", params.Get("function")).
				Dur("wait", c.RateLimitWait).
				Msg("alpha vantage rate limit hit, waiting")
			time.Sleep(c.RateLimitWait)
			continue
		}
		return points, err
	}
}

func (c AlphaVantageClient) query(params url.Values) ([]byte, error) {
	params.Set("apikey", c.ApiKey)
	base := c.BaseURL
	if base == "" {
		base = alphaVantageEndpoint
	}
	req, err := http.NewRequest(http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	httpClient := c.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	response, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query alpha vantage: %w", err)
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpha vantage returned status %d: %s", response.StatusCode, string(responseBytes))
	}

	// API uses odd format which includes numbers in JSON keys
	return cleanResponseBody(responseBytes), nil
}

func parseSeries(body []byte, seriesKey string) ([]timeseries.Point, error) {
	var responseJson interface{}
	if err := json.Unmarshal(body, &responseJson); err != nil {
		return nil, fmt.Errorf("failed to decode alpha vantage response: %w", err)
	}

	for _, key := range []string{"Note", "Information"} {
		if note, err := jsonpath.Get(fmt.Sprintf("$[%q]", key), responseJson); err == nil {
			if s, ok := note.(string); ok && strings.Contains(strings.ToLower(s), "call frequency") {
				return nil, ErrRateLimited
			}
		}
	}
	if msg, err := jsonpath.Get(`$["Error Message"]`, responseJson); err == nil {
		return nil, fmt.Errorf("alpha vantage error: %v", msg)
	}

	raw, err := jsonpath.Get(fmt.Sprintf("$[%q]", seriesKey), responseJson)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage response has no %q: %w", seriesKey, err)
	}
	days, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected %q in alpha vantage response", seriesKey)
	}

	points := make([]timeseries.Point, 0, len(days))
	for date, fields := range days {
		closing, err := jsonpath.Get("$.close", fields)
		if err != nil {
			return nil, fmt.Errorf("no close on %s: %w", date, err)
		}
		s, ok := closing.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected close on %s: %v", date, closing)
		}
		value, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse close on %s: %w", date, err)
		}
		points = append(points, timeseries.Point{Date: date, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points, nil
}

func (c AlphaVantageClient) logger() *log.Logger {
	return logging.OrSilent(c.Logger)
}

func cleanResponseBody(bytes []byte) []byte {
	r := regexp.MustCompile("\"[0-9]+\\. ")
	return r.ReplaceAll(bytes, []byte("\""))
}
