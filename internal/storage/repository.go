// Package storage is the SQLite cache of the ingested operations table and the
// log of written report artifacts.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"moneta/internal/core"
	"moneta/internal/source"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ source.OperationSource = (*SQLiteRepository)(nil)

// ReportEntry is one recorded report artifact.
type ReportEntry struct {
	ID            string
	Category      string
	ReferenceDate string
	Path          string
	RowCount      int
	CreatedAt     time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const operationColumns = `operation_date, payment_date, card_number, status,
	operation_amount, operation_currency, payment_amount, payment_currency,
	cashback, category, mcc, description, bonuses, investment_rounding, rounded_amount`

// ReplaceOperations swaps the cached table for rows, keeping their order.
func (r *SQLiteRepository) ReplaceOperations(ctx context.Context, rows []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM operations`); err != nil {
		return fmt.Errorf("clear operations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO operations (`+operationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.OperationDate, row.PaymentDate, row.CardNumber, row.Status,
			row.OperationAmount, row.OperationCurrency, row.PaymentAmount, row.PaymentCurrency,
			row.Cashback, row.Category, row.MCC, row.Description,
			row.Bonuses, row.InvestmentRounding, row.RoundedAmount,
		); err != nil {
			return fmt.Errorf("insert operation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit operations: %w", err)
	}

	slog.InfoContext(ctx, "Operations table replaced", "row_count", len(rows))
	return nil
}

// Load implements source.OperationSource, returning rows in insertion order.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+operationColumns+` FROM operations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	table := make([]core.Transaction, 0)
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(
			&t.OperationDate, &t.PaymentDate, &t.CardNumber, &t.Status,
			&t.OperationAmount, &t.OperationCurrency, &t.PaymentAmount, &t.PaymentCurrency,
			&t.Cashback, &t.Category, &t.MCC, &t.Description,
			&t.Bonuses, &t.InvestmentRounding, &t.RoundedAmount,
		); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		table = append(table, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return table, nil
}

// CountOperations returns the cached table size.
func (r *SQLiteRepository) CountOperations(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return n, nil
}

// RecordReport stores one report artifact entry. Re-recording the same ID is a
// no-op so event redelivery stays harmless.
func (r *SQLiteRepository) RecordReport(ctx context.Context, entry ReportEntry) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO reports
		(id, category, reference_date, path, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Category, entry.ReferenceDate, entry.Path, entry.RowCount, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("record report: %w", err)
	}
	return nil
}

// ListReports returns recorded reports, newest first.
func (r *SQLiteRepository) ListReports(ctx context.Context) ([]ReportEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, category, reference_date, path, row_count, created_at
		FROM reports ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	entries := make([]ReportEntry, 0)
	for rows.Next() {
		var e ReportEntry
		if err := rows.Scan(&e.ID, &e.Category, &e.ReferenceDate, &e.Path, &e.RowCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return entries, nil
}
