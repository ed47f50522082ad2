package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"moneta/internal/amqp"
	"moneta/internal/config"
	apphttp "moneta/internal/http"
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
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	src, closeSource, err := newOperationSource(cfg)
	if err != nil {
		logger.Error("Failed to initialize operation source", "error", err, applog.FieldBackend, cfg.SourceBackend)
		os.Exit(1)
	}
	if closeSource != nil {
		defer closeSource()
	}
	logger.Info("Operation source initialized", applog.FieldBackend, cfg.SourceBackend)

	user, err := settings.Load(cfg.SettingsFile)
	if err != nil {
		logger.Warn("No user settings, dashboard will skip rates and stocks", "error", err, "path", cfg.SettingsFile)
	}

	var rateProvider services.RateProvider
	if cfg.RatesAPIKey != "" {
		rateProvider = rates.NewClient(cfg.RatesBaseURL, cfg.RatesAPIKey, cfg.RatesTarget)
	} else {
		logger.Info("Rates disabled - no API_KEY provided")
	}
	var priceProvider services.PriceProvider = stocks.NewClient(cfg.StocksBaseURL)

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	dashboards := services.NewDashboardService(src, rateProvider, priceProvider, user)
	reportSvc := services.NewReportService(src, reports.NewWriter(cfg.ReportsDir), amqpClient)

	srv := apphttp.NewServer(":"+cfg.Port, dashboards, reportSvc)

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting moneta server", "port", cfg.Port, applog.FieldBackend, cfg.SourceBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// newOperationSource builds the operations table reader for the configured
// backend. The returned close func is nil when there is nothing to release.
func newOperationSource(cfg *config.Config) (source.OperationSource, func() error, error) {
	switch cfg.SourceBackend {
	case "sheets":
		cli, err := sheetsrc.NewFromEnv(context.Background())
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
