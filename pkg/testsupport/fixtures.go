// Package testsupport bundles the fixture and golden-file helpers shared by
// package tests.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-confmig/pkg/document"
	"github.com/goliatone/go-confmig/pkg/table"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustRead reads a fixture file and returns its raw bytes.
func MustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// MustReadString reads a fixture file as a string.
func MustReadString(t *testing.T, path string) string {
	t.Helper()
	return string(MustRead(t, path))
}

// MustDecodeJSON parses a JSON fixture into an ordered document value.
func MustDecodeJSON(t *testing.T, raw string) document.Value {
	t.Helper()
	v, err := document.DecodeJSONString(raw)
	if err != nil {
		t.Fatalf("decode fixture json: %v", err)
	}
	return v
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Diff returns a diff string if the values differ.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}

// TableOf builds a table from row fixtures, each given as alternating
// field/value pairs.
func TableOf(rows ...[]string) table.Table {
	out := make(table.Table, 0, len(rows))
	for _, pairs := range rows {
		out = append(out, table.RowOf(pairs...))
	}
	return out
}
