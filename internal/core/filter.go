package core

import (
	"fmt"
	"log/slog"
	"time"
)

// SpendingByCategory returns the rows whose category equals category exactly and
// whose operation date falls inside the trailing three-calendar-month window
// ending at referenceDate, inclusive on both ends. referenceDate must be in
// dd.mm.yyyy form; an empty string means now. The source row order is preserved.
//
// The window start is computed with time.AddDate(0, -3, 0), so a reference day
// missing from the target month normalizes forward per Go time semantics.
func SpendingByCategory(rows []Transaction, category, referenceDate string) ([]Transaction, error) {
	end := time.Now()
	if referenceDate != "" {
		parsed, err := time.Parse(ReferenceDateLayout, referenceDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateFormat, referenceDate)
		}
		end = parsed
	}
	start := end.AddDate(0, -3, 0)

	slog.Debug("Filtering transactions by category",
		"category", category,
		"window_start", start.Format(ReferenceDateLayout),
		"window_end", end.Format(ReferenceDateLayout))

	filtered := make([]Transaction, 0)
	for _, row := range rows {
		if row.Category != category {
			continue
		}
		ts, err := ParseOperationDate(row.OperationDate)
		if err != nil {
			return nil, err
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		filtered = append(filtered, row)
	}

	slog.Debug("Category filter finished", "category", category, "row_count", len(filtered))
	return filtered, nil
}
