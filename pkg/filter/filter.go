// Package filter provides the data-reshaping primitives conversion and
// reshape templates rely on: hyphenated range expansion, key-based row
// merging, and whole-table flattening. The functions are pure; the template
// bindings in bindings.go expose them to externally authored templates.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-confmig/pkg/table"
)

// ExpandRange expands a comma-separated range spec such as
// "1-9,12, 15-20,23" into the ordered list of integers it names. A bare
// integer expands to itself and "start-end" expands inclusively; a reversed
// range contributes nothing. Tokens with more than one hyphen are a format
// error naming the offending token.
func ExpandRange(spec string) ([]int, error) {
	var out []int
	for _, token := range strings.Split(spec, ",") {
		parts := strings.Split(token, "-")
		switch len(parts) {
		case 1:
			n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, fmt.Errorf("filter: parse %q: %w", token, err)
			}
			out = append(out, n)
		case 2:
			start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, fmt.Errorf("filter: parse %q: %w", token, err)
			}
			end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("filter: parse %q: %w", token, err)
			}
			for i := start; i <= end; i++ {
				out = append(out, i)
			}
		default:
			return nil, fmt.Errorf("format error in %s", token)
		}
	}
	return out, nil
}

// MergeByKey merges rows that share a value in keyField. The first row seen
// for a key becomes the base record and keeps its identity; later rows
// overwrite any field they populate with a non-empty value, adding fields
// the base never had. Keys emit in first-occurrence order. Callers are
// trusted to keep field population disjoint: on a conflict the later row
// wins silently.
func MergeByKey(t table.Table, keyField string) table.Table {
	var order []string
	byKey := make(map[string]*table.Row)

	for _, row := range t {
		key := row.Get(keyField)
		base, seen := byKey[key]
		if !seen {
			byKey[key] = row
			order = append(order, key)
			continue
		}
		for _, field := range row.Fields() {
			if value := row.Get(field); value != "" {
				base.Set(field, value)
			}
		}
	}

	out := make(table.Table, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}

// Flatten merges every row of the table into one record. The first row's
// fields seed the result with empty values; every non-empty field of every
// row is then assigned in, so rows after the first can widen the schema.
// The table must have at least one row; Flatten returns nil otherwise.
func Flatten(t table.Table) table.Table {
	if len(t) == 0 {
		return nil
	}

	result := table.NewRow()
	for _, field := range t[0].Fields() {
		result.Set(field, "")
	}
	for _, row := range t {
		for _, field := range row.Fields() {
			if value := row.Get(field); value != "" {
				result.Set(field, value)
			}
		}
	}
	return table.Table{result}
}
