package core

import (
	"context"
	"encoding/json"
	"testing"
)

func dashboardRows() []Transaction {
	return []Transaction{
		{CardNumber: "*1111", OperationAmount: -100, Cashback: 5, PaymentAmount: -100, PaymentDate: "01.06.2024"},
		{CardNumber: "*1111", OperationAmount: 700, PaymentAmount: 700, PaymentDate: "02.06.2024", Category: "Переводы"},
	}
}

func TestAssembleDashboard(t *testing.T) {
	ctx := context.Background()
	d := AssembleDashboard(ctx, dashboardRows(),
		func() string { return GreetingMorning },
		func(context.Context) []CurrencyRate { return []CurrencyRate{{Currency: "USD", Rate: 70}} },
		func(context.Context) []StockPrice { return []StockPrice{{Stock: "AAPL", Price: 200}} },
	)

	if d.Greeting != GreetingMorning {
		t.Fatalf("greeting = %q", d.Greeting)
	}
	if len(d.Cards) != 1 || d.Cards[0].LastDigits != "*1111" {
		t.Fatalf("cards = %+v", d.Cards)
	}
	if len(d.TopTransactions) != 2 || d.TopTransactions[0].Amount != 700 {
		t.Fatalf("top transactions = %+v", d.TopTransactions)
	}
	if len(d.CurrencyRates) != 1 || d.CurrencyRates[0].Rate != 70 {
		t.Fatalf("currency rates = %+v", d.CurrencyRates)
	}
	if len(d.StockPrices) != 1 || d.StockPrices[0].Stock != "AAPL" {
		t.Fatalf("stock prices = %+v", d.StockPrices)
	}
}

func TestAssembleDashboardNilProviders(t *testing.T) {
	d := AssembleDashboard(context.Background(), dashboardRows(), nil, nil, nil)
	if d.Greeting == "" {
		t.Fatal("nil greeting provider must fall back to time of day")
	}

	// Absent providers serialize as empty lists, never null.
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"greeting", "cards", "top_transactions", "currency_rates", "stock_prices"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing dashboard key %q", key)
		}
	}
	if string(decoded["currency_rates"]) != "[]" || string(decoded["stock_prices"]) != "[]" {
		t.Fatalf("provider lists must be empty arrays: %s / %s", decoded["currency_rates"], decoded["stock_prices"])
	}
}
