package reports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"moneta/internal/core"
)

func TestWriteNamedReport(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	rows := []core.Record{{Category: "Рестораны", OperationAmount: -300, OperationDate: "15.07.2023 12:00:00"}}
	path, err := w.Write(rows, "restaurants.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "restaurants.json") {
		t.Fatalf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("artifact is not a JSON array: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["category"] != "Рестораны" {
		t.Fatalf("bad artifact content: %+v", decoded)
	}
	if !strings.Contains(string(data), "\n    ") {
		t.Fatalf("artifact must be indented:\n%s", data)
	}
	if !strings.Contains(string(data), "Рестораны") {
		t.Fatalf("non-ASCII text must stay readable:\n%s", data)
	}
}

func TestWriteGeneratedName(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.now = func() time.Time { return time.Date(2024, 6, 7, 13, 45, 9, 0, time.UTC) }

	path, err := w.Write(nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name := filepath.Base(path)
	if name != "report_20240607_134509.json" {
		t.Fatalf("unexpected generated name %q", name)
	}
	if !regexp.MustCompile(`^report_\d{8}_\d{6}\.json$`).MatchString(name) {
		t.Fatalf("name does not match the documented pattern: %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("empty report must serialize as []: %s", data)
	}
}
