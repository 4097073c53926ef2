// Package artifacts writes conversion byproducts to disk: one CSV per
// extracted table and the per-input output files the CLI produces.
package artifacts

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-confmig/pkg/table"
)

// WriteTables exports every tabular entry of the set as <dir>/<name>.csv and
// returns the total data-row count across all files. The header row comes
// from the first row's field order. Non-tabular entries and the injected
// options entry are skipped.
func WriteTables(dir string, set *table.Set) (int, error) {
	total := 0
	for _, name := range set.Names() {
		if name == table.OptionsKey {
			continue
		}
		entry, _ := set.Get(name)
		rows, ok := table.RowsFromValue(entry)
		if !ok || len(rows) == 0 {
			continue
		}
		count, err := writeCSV(filepath.Join(dir, name+".csv"), rows)
		if err != nil {
			return total, err
		}
		total += count
	}
	return total, nil
}

func writeCSV(path string, rows table.Table) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("artifacts: create %q: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("artifacts: create %q: %w", path, err)
	}
	defer f.Close()

	header := rows[0].Fields()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return 0, fmt.Errorf("artifacts: write %q: %w", path, err)
	}
	count := 0
	for _, row := range rows {
		record := make([]string, len(header))
		for i, field := range header {
			record[i] = row.Get(field)
		}
		if err := w.Write(record); err != nil {
			return count, fmt.Errorf("artifacts: write %q: %w", path, err)
		}
		count++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return count, fmt.Errorf("artifacts: flush %q: %w", path, err)
	}
	return count, nil
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("artifacts: create %q: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("artifacts: write %q: %w", path, err)
	}
	return nil
}

// CountCommands counts the non-blank lines of raw configuration text. The
// CLI compares this against exported CSV rows to report a rough parse rate.
func CountCommands(raw string) int {
	count := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
