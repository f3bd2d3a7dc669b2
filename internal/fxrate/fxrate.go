// Package fxrate looks up historical foreign exchange rates for converting
// foreign-currency statement lines into the ledger currency.
package fxrate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"atamur/ynab-csv/internal/parsererror"
)

// Lookup resolves the exchange rate from one currency to another on a given
// date. Implementations must be safe for concurrent use.
type Lookup interface {
	Rate(ctx context.Context, date time.Time, from, to string) (decimal.Decimal, error)
}

// DefaultBaseURL is the public Frankfurter API endpoint.
const DefaultBaseURL = "https://api.frankfurter.app"

type cacheKey struct {
	date string
	from string
	to   string
}

// Client fetches historical rates from a Frankfurter-compatible API and
// caches them per (date, currency pair). Statements routinely repeat the
// same date many times, so the cache keeps a batch run at one request per
// distinct day.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger

	mu    sync.Mutex
	cache map[cacheKey]decimal.Decimal
}

// NewClient returns a Client for the given endpoint. An empty baseURL selects
// the public Frankfurter API.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logrus.New(),
		cache:      make(map[cacheKey]decimal.Decimal),
	}
}

// SetLogger redirects the client's logging to the given logger.
func (c *Client) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		c.log = logger
	}
}

type ratesResponse struct {
	Date  string             `json:"date"`
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rate returns the exchange rate from one unit of `from` into `to` on the
// given date. Identical currencies short-circuit to 1.
func (c *Client) Rate(ctx context.Context, date time.Time, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	day := date.Format("2006-01-02")
	key := cacheKey{date: day, from: from, to: to}

	c.mu.Lock()
	if rate, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return rate, nil
	}
	c.mu.Unlock()

	rate, err := c.fetch(ctx, day, from, to)
	if err != nil {
		return decimal.Zero, &parsererror.RateLookupError{Date: day, From: from, To: to, Err: err}
	}

	c.mu.Lock()
	c.cache[key] = rate
	c.mu.Unlock()

	return rate, nil
}

func (c *Client) fetch(ctx context.Context, day, from, to string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/%s?from=%s&to=%s",
		c.baseURL, day, url.QueryEscape(from), url.QueryEscape(to))

	c.log.WithFields(logrus.Fields{
		"date": day,
		"from": from,
		"to":   to,
	}).Debug("Fetching exchange rate")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetching rate: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decoding rate response: %w", err)
	}

	value, ok := body.Rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s rate in response for %s", to, day)
	}

	return decimal.NewFromFloat(value), nil
}
