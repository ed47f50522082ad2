// Command moneta is an interactive console over the operations table: it
// prints the dashboard, runs a text search and generates a category
// spending report, all against the configured source backend.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"moneta/internal/amqp"
	"moneta/internal/config"
	applog "moneta/internal/log"
	"moneta/internal/rates"
	"moneta/internal/reports"
	"moneta/internal/services"
	"moneta/internal/settings"
	"moneta/internal/source"
	"moneta/internal/source/csvsrc"
	"moneta/internal/source/sheetsrc"
	"moneta/internal/stocks"
	"moneta/internal/storage"
)

func main() {
	_ = godotenv.Load()

	// Keep stdout clean for the interactive session, log to stderr.
	logCfg := applog.DefaultConfig()
	logCfg.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := applog.New(logCfg)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	ctx := context.Background()

	src, closeSource, err := newOperationSource(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "source error:", err)
		os.Exit(1)
	}
	if closeSource != nil {
		defer closeSource()
	}

	user, err := settings.Load(cfg.SettingsFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "note: no user settings, rates and stocks are skipped")
	}

	var rateProvider services.RateProvider
	if cfg.RatesAPIKey != "" {
		rateProvider = rates.NewClient(cfg.RatesBaseURL, cfg.RatesAPIKey, cfg.RatesTarget)
	}
	var priceProvider services.PriceProvider = stocks.NewClient(cfg.StocksBaseURL)

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		if amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue); err != nil {
			fmt.Fprintln(os.Stderr, "note: AMQP unavailable, report events are skipped:", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
		}
	}

	dashboards := services.NewDashboardService(src, rateProvider, priceProvider, user)
	reportSvc := services.NewReportService(src, reports.NewWriter(cfg.ReportsDir), amqpClient)

	in := bufio.NewScanner(os.Stdin)

	fmt.Println("Главная страница:")
	dash, err := dashboards.Build(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dashboard error:", err)
		os.Exit(1)
	}
	printJSON(dash)

	query := prompt(in, "\nВведите строку для поиска транзакций: ")
	results, err := dashboards.Search(ctx, query)
	if err != nil {
		fmt.Fprintln(os.Stderr, "search error:", err)
		os.Exit(1)
	}
	fmt.Printf("Найдено транзакций: %d\n", len(results))
	printJSON(results)

	category := prompt(in, "\nВведите категорию для отчёта: ")
	if category == "" {
		fmt.Println("Категория не задана, отчёт пропущен.")
		return
	}
	date := prompt(in, "Введите дату в формате dd.mm.yyyy (пусто = сегодня): ")

	rows, path, err := reportSvc.SpendingByCategory(ctx, category, date, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "report error:", err)
		os.Exit(1)
	}
	fmt.Printf("Траты по категории %q за три месяца (%d операций):\n", category, len(rows))
	printJSON(rows)
	fmt.Println("Отчёт сохранён:", path)
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, "encode error:", err)
	}
}

func newOperationSource(ctx context.Context, cfg *config.Config) (source.OperationSource, func() error, error) {
	switch cfg.SourceBackend {
	case "sheets":
		cli, err := sheetsrc.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, err
		}
		return cli, nil, nil
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return csvsrc.New(cfg.OperationsCSVPath), nil, nil
	}
}
