package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Search filters a serialized record collection by a case-insensitive substring
// match of query against the category or description field. Every match is
// re-emitted as a full Record, so the output always carries the complete
// external field set regardless of which field matched. Input order is
// preserved, and an empty query matches every record.
func Search(query string, operations []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(operations, &records); err != nil {
		return nil, fmt.Errorf("decode operations: %w", err)
	}

	needle := strings.ToLower(query)
	matches := make([]Record, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Category), needle) ||
			strings.Contains(strings.ToLower(rec.Description), needle) {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}
