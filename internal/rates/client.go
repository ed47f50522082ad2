// Package rates fetches currency exchange rates for the dashboard.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"moneta/internal/core"
	"moneta/internal/quotecache"
)

const (
	// DefaultBaseURL is the exchange-rates API endpoint.
	DefaultBaseURL = "https://api.apilayer.com/exchangerates_data"

	// DefaultTarget is the currency rates are quoted against.
	DefaultTarget = "RUB"

	fetchLimit = 4
)

// Client talks to an apilayer-style exchange-rates API. Responses are cached
// per base currency for the lifetime of the cache TTL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	target     string
	cache      *quotecache.Cache[float64]
}

// NewClient creates a rates client. Empty baseURL and target fall back to the
// package defaults.
func NewClient(baseURL, apiKey, target string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if target == "" {
		target = DefaultTarget
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		target:     target,
		cache:      quotecache.New[float64](64, 15*time.Minute),
	}
}

type latestResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Rate returns how much one unit of base is worth in the client's target
// currency.
func (c *Client) Rate(ctx context.Context, base string) (float64, error) {
	if rate, ok := c.cache.Get(base); ok {
		return rate, nil
	}

	reqURL := fmt.Sprintf("%s/latest?base=%s", c.baseURL, url.QueryEscape(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build rate request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch rate for %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch rate for %s: unexpected status %d", base, resp.StatusCode)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode rate response for %s: %w", base, err)
	}
	rate, ok := payload.Rates[c.target]
	if !ok {
		return 0, fmt.Errorf("rate response for %s is missing %s", base, c.target)
	}

	c.cache.Set(base, rate)
	return rate, nil
}

// Rates fetches rates for all currencies with bounded concurrency. A currency
// whose fetch fails is logged and dropped; the rest of the batch continues.
// Successful entries keep the input order.
func (c *Client) Rates(ctx context.Context, currencies []string) []core.CurrencyRate {
	results := make([]*core.CurrencyRate, len(currencies))

	var g errgroup.Group
	g.SetLimit(fetchLimit)
	for i, currency := range currencies {
		i, currency := i, currency
		g.Go(func() error {
			rate, err := c.Rate(ctx, currency)
			if err != nil {
				slog.WarnContext(ctx, "Skipping currency rate", "currency", currency, "error", err)
				return nil
			}
			results[i] = &core.CurrencyRate{Currency: currency, Rate: rate}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors, failures are per-item

	out := make([]core.CurrencyRate, 0, len(currencies))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
