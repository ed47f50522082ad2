package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moneta/internal/core"
)

type fakeDashboards struct {
	builds  int
	dash    core.Dashboard
	results []core.Record
	err     error
}

func (f *fakeDashboards) Build(ctx context.Context) (core.Dashboard, error) {
	f.builds++
	return f.dash, f.err
}

func (f *fakeDashboards) Search(ctx context.Context, query string) ([]core.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.Record
	for _, r := range f.results {
		if strings.Contains(strings.ToLower(r.Category), strings.ToLower(query)) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeReports struct {
	rows []core.Record
	path string
	err  error

	gotCategory string
	gotDate     string
}

func (f *fakeReports) SpendingByCategory(ctx context.Context, category, referenceDate, fileName string) ([]core.Record, string, error) {
	f.gotCategory = category
	f.gotDate = referenceDate
	if f.err != nil {
		return nil, "", f.err
	}
	return f.rows, f.path, nil
}

func newTestServer(t *testing.T, d DashboardBuilder, r ReportGenerator) *httptest.Server {
	t.Helper()
	s := NewServer(":0", d, r)
	ts := httptest.NewServer(s.Server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthAndReady(t *testing.T) {
	ts := newTestServer(t, &fakeDashboards{}, &fakeReports{})

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestDashboardHandler(t *testing.T) {
	dashboards := &fakeDashboards{
		dash: core.Dashboard{
			Greeting: core.GreetingMorning,
			Cards: []core.CardSummary{
				{LastDigits: "1111", TotalSpent: 100, Cashback: 1},
			},
			TopTransactions: []core.TopTransaction{},
			CurrencyRates:   []core.CurrencyRate{{Currency: "USD", Rate: 91.5}},
			StockPrices:     []core.StockPrice{},
		},
	}
	ts := newTestServer(t, dashboards, &fakeReports{})

	resp, err := http.Get(ts.URL + "/dashboard")
	if err != nil {
		t.Fatalf("GET /dashboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"greeting", "cards", "top_transactions", "currency_rates", "stock_prices"} {
		if _, ok := got[key]; !ok {
			t.Errorf("response missing key %q", key)
		}
	}
}

func TestDashboardHandlerCachesResult(t *testing.T) {
	dashboards := &fakeDashboards{dash: core.Dashboard{Greeting: core.GreetingNight}}
	ts := newTestServer(t, dashboards, &fakeReports{})

	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/dashboard")
		if err != nil {
			t.Fatalf("GET /dashboard: %v", err)
		}
		resp.Body.Close()
	}
	if dashboards.builds != 1 {
		t.Errorf("builds = %d, want 1 (subsequent requests served from cache)", dashboards.builds)
	}
}

func TestDashboardHandlerBuildError(t *testing.T) {
	ts := newTestServer(t, &fakeDashboards{err: errors.New("boom")}, &fakeReports{})

	resp, err := http.Get(ts.URL + "/dashboard")
	if err != nil {
		t.Fatalf("GET /dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestSearchHandler(t *testing.T) {
	dashboards := &fakeDashboards{
		results: []core.Record{
			{Category: "Супермаркеты", Description: "Лента"},
			{Category: "Переводы", Description: "Иван С."},
		},
	}
	ts := newTestServer(t, dashboards, &fakeReports{})

	resp, err := http.Get(ts.URL + "/search?q=" + "%D1%81%D1%83%D0%BF%D0%B5%D1%80") // "супер"
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got struct {
		Query   string        `json:"query"`
		Count   int           `json:"count"`
		Results []core.Record `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Count != 1 || len(got.Results) != 1 {
		t.Fatalf("count = %d, results = %d, want 1", got.Count, len(got.Results))
	}
	if got.Results[0].Category != "Супермаркеты" {
		t.Errorf("category = %q", got.Results[0].Category)
	}
}

func TestSearchHandlerEmptyResult(t *testing.T) {
	ts := newTestServer(t, &fakeDashboards{}, &fakeReports{})

	resp, err := http.Get(ts.URL + "/search?q=nothing")
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	defer resp.Body.Close()

	var got struct {
		Results []core.Record `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Results == nil {
		t.Error("results should decode to an empty slice, not null")
	}
}

func TestSpendingReportHandler(t *testing.T) {
	reports := &fakeReports{
		rows: []core.Record{{Category: "Рестораны", OperationAmount: -300}},
		path: "data/reports/report_20240607_134509.json",
	}
	ts := newTestServer(t, &fakeDashboards{}, reports)

	body := `{"category": "Рестораны", "reference_date": "20.08.2023"}`
	resp, err := http.Post(ts.URL+"/reports/spending-by-category", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var got spendingReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Path != reports.path {
		t.Errorf("path = %q, want %q", got.Path, reports.path)
	}
	if got.Count != 1 {
		t.Errorf("count = %d, want 1", got.Count)
	}
	if reports.gotCategory != "Рестораны" || reports.gotDate != "20.08.2023" {
		t.Errorf("service got category=%q date=%q", reports.gotCategory, reports.gotDate)
	}
}

func TestSpendingReportHandlerValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"missing category", `{"reference_date": "20.08.2023"}`, nil, http.StatusBadRequest},
		{"malformed body", `{"category": `, nil, http.StatusBadRequest},
		{"invalid date", `{"category": "Еда", "reference_date": "2023-08-20"}`,
			fmt.Errorf("%w: %q", core.ErrInvalidDateFormat, "2023-08-20"), http.StatusBadRequest},
		{"source failure", `{"category": "Еда"}`, errors.New("load failed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &fakeDashboards{}, &fakeReports{err: tt.serviceErr})

			resp, err := http.Post(ts.URL+"/reports/spending-by-category", "application/json", bytes.NewReader([]byte(tt.body)))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, &fakeDashboards{}, &fakeReports{})

	resp, err := http.Post(ts.URL+"/dashboard", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
	if allow := resp.Header.Get("Allow"); allow != "GET" {
		t.Errorf("Allow = %q, want GET", allow)
	}
}
