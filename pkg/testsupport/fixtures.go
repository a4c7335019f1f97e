package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// LoadDocument reads a YAML or JSON document fixture. Testing helpers fail the
// test on error to keep table tests concise.
func LoadDocument(t *testing.T, path string) model.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, so
// fixtures can be wired in setup functions.
func LoadDocumentFromPath(path string) (model.Document, error) {
	if path == "" {
		return model.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := model.DecodeDocument(data)
	if err != nil {
		return model.Document{}, fmt.Errorf("testsupport: decode document: %w", err)
	}
	return doc, nil
}

// DocumentData flattens a document into plain maps so it can be compared with
// cmp without reaching into unexported fields.
func DocumentData(doc model.Document) []map[string]any {
	rows := make([]map[string]any, 0, doc.Len())
	for _, row := range doc.Rows() {
		fields := make([]map[string]any, 0, row.Len())
		for _, field := range row.Fields() {
			fields = append(fields, field.Data())
		}
		rows = append(rows, map[string]any{"id": row.ID(), "fields": fields})
	}
	return rows
}

// CompareDocuments returns a diff string if the documents differ.
func CompareDocuments(want, got model.Document) string {
	return cmp.Diff(DocumentData(want), DocumentData(got))
}

// WriteGolden writes a JSON golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs fn against a buffer and returns what it wrote.
func CaptureOutput(t *testing.T, fn func(io.Writer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		t.Fatalf("capture output: %v", err)
	}
	return buf.String()
}
