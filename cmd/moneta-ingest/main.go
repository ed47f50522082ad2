// Command moneta-ingest copies the operations table from a CSV file or a
// Google Sheet into the local SQLite cache, replacing the previous contents.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"moneta/internal/config"
	applog "moneta/internal/log"
	"moneta/internal/source"
	"moneta/internal/source/csvsrc"
	"moneta/internal/source/sheetsrc"
	"moneta/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentSource)
	applog.SetDefault(logger)

	from := flag.String("from", "", "source backend to ingest from: csv or sheets (default: SOURCE_BACKEND)")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	backend := *from
	if backend == "" {
		backend = cfg.SourceBackend
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var (
		src source.OperationSource
		err error
	)
	switch backend {
	case "csv":
		src = csvsrc.New(cfg.OperationsCSVPath)
	case "sheets":
		src, err = sheetsrc.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
	default:
		logger.Error("Cannot ingest from this backend", applog.FieldBackend, backend)
		os.Exit(1)
	}

	rows, err := src.Load(ctx)
	if err != nil {
		logger.Error("Failed to load operations", "error", err, applog.FieldBackend, backend)
		os.Exit(1)
	}
	logger.Info("Operations loaded", applog.FieldBackend, backend, applog.FieldRowCount, len(rows))

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.ReplaceOperations(ctx, rows); err != nil {
		logger.Error("Failed to store operations", "error", err)
		os.Exit(1)
	}

	count, err := repo.CountOperations(ctx)
	if err != nil {
		logger.Error("Failed to count operations", "error", err)
		os.Exit(1)
	}
	logger.Info("Ingest complete", "db_path", cfg.SQLiteDBPath, applog.FieldRowCount, count)
}
