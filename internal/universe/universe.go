// Package universe fetches the Nifty-100 constituent list from the NSE
// archive. A failure here is fatal for the whole run; there is nothing
// to scan without a universe.
package universe

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Client downloads and parses the constituent CSV.
type Client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a universe client with rate limiting.
func NewClient(url string, timeout time.Duration, requestsPerSec int) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), requestsPerSec),
		logger:  log.With().Str("component", "universe_client").Logger(),
	}
}

// Fetch returns the listed symbols in file order, without any exchange
// suffix.
func (c *Client) Fetch(ctx context.Context) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	c.logger.Debug().Str("url", c.url).Msg("Fetching universe")

	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
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
		return nil, fmt.Errorf("universe source unreachable: %w", err)
	}
	defer resp.Body.Close()

	symbols, err := parseSymbols(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("universe source unparseable: %w", err)
	}

	c.logger.Debug().Int("count", len(symbols)).Msg("Fetched universe")
	return symbols, nil
}

// parseSymbols extracts the Symbol column from the NSE index CSV.
func parseSymbols(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	symbolCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "Symbol") {
			symbolCol = i
			break
		}
	}
	if symbolCol == -1 {
		return nil, fmt.Errorf("no Symbol column in header %v", header)
	}

	var symbols []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		if symbolCol >= len(record) {
			continue
		}
		sym := strings.TrimSpace(record[symbolCol])
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols, nil
}
