// Package reports persists filtered record sets as JSON report artifacts.
package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"moneta/internal/core"
)

// nameLayout produces the timestamp part of a generated report name.
const nameLayout = "20060102_150405"

// Writer writes report artifacts into a fixed directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Write serializes rows as an indented UTF-8 JSON array and persists it under
// name inside the writer's directory. An empty name generates
// report_<YYYYMMDD_HHMMSS>.json. The written path is returned.
func (w *Writer) Write(rows []core.Record, name string) (string, error) {
	if name == "" {
		name = "report_" + w.now().Format(nameLayout) + ".json"
	}
	if rows == nil {
		rows = []core.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(rows); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	slog.Info("Report written", "report_path", path, "row_count", len(rows))
	return path, nil
}
