// Package stocks fetches stock quotes for the dashboard.
package stocks

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
	// DefaultBaseURL is the Yahoo-style quote endpoint.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	fetchLimit = 4
)

// Client fetches market prices from a Yahoo-style quote API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *quotecache.Cache[float64]
}

// NewClient creates a stocks client. An empty baseURL falls back to the
// package default.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		cache:      quotecache.New[float64](64, 15*time.Minute),
	}
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Price returns the regular market price for one ticker.
func (c *Client) Price(ctx context.Context, ticker string) (float64, error) {
	if price, ok := c.cache.Get(ticker); ok {
		return price, nil
	}

	reqURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("User-Agent", "moneta/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch quote for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch quote for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var payload quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode quote response for %s: %w", ticker, err)
	}
	if len(payload.QuoteResponse.Result) == 0 {
		return 0, fmt.Errorf("quote response for %s is empty", ticker)
	}

	price := payload.QuoteResponse.Result[0].RegularMarketPrice
	c.cache.Set(ticker, price)
	return price, nil
}

// Prices fetches quotes for all tickers with bounded concurrency. A ticker
// whose fetch fails is logged and dropped; the rest of the batch continues.
// Successful entries keep the input order.
func (c *Client) Prices(ctx context.Context, tickers []string) []core.StockPrice {
	results := make([]*core.StockPrice, len(tickers))

	var g errgroup.Group
	g.SetLimit(fetchLimit)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			price, err := c.Price(ctx, ticker)
			if err != nil {
				slog.WarnContext(ctx, "Skipping stock price", "stock", ticker, "error", err)
				return nil
			}
			results[i] = &core.StockPrice{Stock: ticker, Price: price}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors, failures are per-item

	out := make([]core.StockPrice, 0, len(tickers))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
