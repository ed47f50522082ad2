// Package csvsrc loads the operations table from a local CSV export.
package csvsrc

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"moneta/internal/core"
	"moneta/internal/source"
)

// Reader loads operations from a CSV file whose header row uses the canonical
// column names. Column order is free; unknown columns are ignored.
type Reader struct {
	path string
}

var _ source.OperationSource = (*Reader)(nil)

func New(path string) *Reader {
	return &Reader{path: path}
}

// Load reads the whole file, preserving row order.
func (r *Reader) Load(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open operations file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // rows may omit trailing empty cells
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read operations file %s: %w", r.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("operations file %s has no header row", r.path)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	for _, col := range []string{"operation_date", "category", "description"} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("operations file %s is missing the %s column", r.path, col)
		}
	}

	table := make([]core.Transaction, 0, len(rows)-1)
	for n, row := range rows[1:] {
		t, err := source.FromStringRow(func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		table = append(table, t)
	}

	slog.InfoContext(ctx, "Operations table loaded", "backend", "csv", "path", r.path, "row_count", len(table))
	return table, nil
}
