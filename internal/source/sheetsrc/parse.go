package sheetsrc

import (
	"fmt"
	"strconv"

	"moneta/internal/core"
	"moneta/internal/source"
)

// parseOperations converts a values matrix (as returned by the Sheets API)
// into table rows. The first row must carry the canonical column names.
func parseOperations(values [][]interface{}) ([]core.Transaction, error) {
	if len(values) == 0 {
		return []core.Transaction{}, nil
	}

	headers := toStrings(values[0])
	index := make(map[string]int, len(headers))
	for i, name := range headers {
		index[name] = i
	}
	for _, col := range []string{"operation_date", "category", "description"} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("operations sheet is missing the %s column; got headers=%v", col, headers)
		}
	}

	rows := make([]core.Transaction, 0, len(values)-1)
	for n, raw := range values[1:] {
		cells := toStrings(raw)
		t, err := source.FromStringRow(func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(cells) {
				return ""
			}
			return cells[i]
		})
		if err != nil {
			return nil, fmt.Errorf("sheet row %d: %w", n+2, err)
		}
		rows = append(rows, t)
	}
	return rows, nil
}

// toStrings renders one API row as strings. Numeric cells come back from the
// API as float64 and must not pick up exponent notation.
func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		switch v := cell.(type) {
		case string:
			out[i] = v
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[i] = strconv.FormatBool(v)
		case nil:
			out[i] = ""
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
