package core

import (
	"context"
	"time"
)

type (
	// CurrencyRate is one pre-shaped entry from a rate provider.
	CurrencyRate struct {
		Currency string  `json:"currency"`
		Rate     float64 `json:"rate"`
	}

	// StockPrice is one pre-shaped entry from a price provider.
	StockPrice struct {
		Stock string  `json:"stock"`
		Price float64 `json:"price"`
	}

	// Dashboard is the composed summary view of the operations table.
	Dashboard struct {
		Greeting        string           `json:"greeting"`
		Cards           []CardSummary    `json:"cards"`
		TopTransactions []TopTransaction `json:"top_transactions"`
		CurrencyRates   []CurrencyRate   `json:"currency_rates"`
		StockPrices     []StockPrice     `json:"stock_prices"`
	}

	// GreetingFunc supplies the greeting line.
	GreetingFunc func() string

	// RatesFunc supplies currency rates, already reduced to the entries that
	// could be fetched.
	RatesFunc func(ctx context.Context) []CurrencyRate

	// PricesFunc supplies stock prices, already reduced to the entries that
	// could be fetched.
	PricesFunc func(ctx context.Context) []StockPrice
)

// AssembleDashboard composes the dashboard from the table and the external
// providers. It performs no filtering of its own: cards come from
// AggregateByCard, top transactions from TopTransactions with DefaultTopN, and
// the provider results are taken as-is. A nil provider yields an empty list; a
// nil greeting falls back to the current time of day.
func AssembleDashboard(ctx context.Context, rows []Transaction, greeting GreetingFunc, rates RatesFunc, prices PricesFunc) Dashboard {
	d := Dashboard{
		Cards:           AggregateByCard(rows),
		TopTransactions: TopTransactions(rows, DefaultTopN),
		CurrencyRates:   []CurrencyRate{},
		StockPrices:     []StockPrice{},
	}

	if greeting != nil {
		d.Greeting = greeting()
	} else {
		d.Greeting = Greeting(time.Now())
	}
	if rates != nil {
		if fetched := rates(ctx); fetched != nil {
			d.CurrencyRates = fetched
		}
	}
	if prices != nil {
		if fetched := prices(ctx); fetched != nil {
			d.StockPrices = fetched
		}
	}
	return d
}
