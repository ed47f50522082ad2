// Package services orchestrates the operations table, the core transforms and
// the external collaborators.
package services

import (
	"context"
	"fmt"
	"time"

	"moneta/internal/core"
	"moneta/internal/settings"
	"moneta/internal/source"
)

type (
	// RateProvider supplies currency rates for the dashboard, already reduced
	// to the entries that could be fetched.
	RateProvider interface {
		Rates(ctx context.Context, currencies []string) []core.CurrencyRate
	}

	// PriceProvider supplies stock prices for the dashboard, already reduced
	// to the entries that could be fetched.
	PriceProvider interface {
		Prices(ctx context.Context, tickers []string) []core.StockPrice
	}
)

// DashboardService builds the read-side views: the dashboard summary and the
// free-text search. Rate and price providers are optional; without them the
// corresponding dashboard lists stay empty.
type DashboardService struct {
	source source.OperationSource
	rates  RateProvider
	prices PriceProvider
	user   settings.Settings
	clock  func() time.Time
}

func NewDashboardService(src source.OperationSource, rates RateProvider, prices PriceProvider, user settings.Settings) *DashboardService {
	return &DashboardService{
		source: src,
		rates:  rates,
		prices: prices,
		user:   user,
		clock:  time.Now,
	}
}

// Build loads the table and assembles the dashboard.
func (s *DashboardService) Build(ctx context.Context) (core.Dashboard, error) {
	rows, err := s.source.Load(ctx)
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("load operations: %w", err)
	}

	d := core.AssembleDashboard(ctx, rows,
		func() string { return core.Greeting(s.clock()) },
		s.ratesFunc(),
		s.pricesFunc(),
	)
	return d, nil
}

// Search loads the table, projects it to the external record set and runs the
// free-text search over it.
func (s *DashboardService) Search(ctx context.Context, query string) ([]core.Record, error) {
	rows, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load operations: %w", err)
	}
	data, err := core.MarshalRecords(rows)
	if err != nil {
		return nil, err
	}
	return core.Search(query, data)
}

func (s *DashboardService) ratesFunc() core.RatesFunc {
	if s.rates == nil || len(s.user.UserCurrencies) == 0 {
		return nil
	}
	return func(ctx context.Context) []core.CurrencyRate {
		return s.rates.Rates(ctx, s.user.UserCurrencies)
	}
}

func (s *DashboardService) pricesFunc() core.PricesFunc {
	if s.prices == nil || len(s.user.UserStocks) == 0 {
		return nil
	}
	return func(ctx context.Context) []core.StockPrice {
		return s.prices.Prices(ctx, s.user.UserStocks)
	}
}
