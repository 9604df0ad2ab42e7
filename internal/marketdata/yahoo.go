// Package marketdata fetches daily OHLCV history per symbol from the
// Yahoo Finance chart API. Missing or empty history is a typed error so
// the screener can skip the symbol instead of aborting the run.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/rpatel-labs/niftyscan/internal/model"
)

// ErrNoData marks a symbol with no usable history (delisted, unknown, or
// an empty chart).
var ErrNoData = errors.New("no price data")

// Client fetches candles from the Yahoo chart endpoint.
type Client struct {
	baseURL    string
	suffix     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a market data client. suffix is appended to every
// symbol when building the request (".NS" for NSE listings).
func NewClient(baseURL, suffix string, timeout time.Duration, requestsPerSec int) *Client {
	return &Client{
		baseURL: baseURL,
		suffix:  suffix,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), requestsPerSec),
		logger:  log.With().Str("component", "marketdata_client").Logger(),
	}
}

// yahooChart is the response shape of the v8 chart API. Quote arrays use
// interface{} because Yahoo emits nulls on holidays.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if n, ok := v.(float64); ok {
		return n
	}
	return 0
}

// FetchDailyBars returns the daily candles for one symbol over the
// lookback range ("6mo", "1y", ...), oldest first.
func (c *Client) FetchDailyBars(ctx context.Context, symbol, lookback, interval string) ([]model.Candle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		c.baseURL, url.PathEscape(symbol+c.suffix), interval, lookback)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	c.logger.Debug().Str("symbol", symbol).Str("url", u).Msg("Fetching candles")

	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			// Unknown symbols are not worth retrying.
			return backoff.Permanent(ErrNoData)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(backoffStrategy, ctx)); err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("after retries: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if chart.Chart.Error != nil {
		c.logger.Warn().Str("symbol", symbol).Str("code", chart.Chart.Error.Code).Msg("Chart API error")
		return nil, ErrNoData
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	candles := make([]model.Candle, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		cl := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bar (holiday)
		}
		candles = append(candles, model.Candle{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: int64(toFloat(quote.Volume[i])),
		})
	}
	if len(candles) == 0 {
		return nil, ErrNoData
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].Date.Before(candles[j].Date) })

	c.logger.Debug().Str("symbol", symbol).Int("count", len(candles)).Msg("Fetched candles")
	return candles, nil
}
