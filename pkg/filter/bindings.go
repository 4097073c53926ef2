package filter

import (
	"fmt"
)

// Func is the template-filter shape the pongo2 adapter registers: input
// value in, optional parameter, transformed value out.
type Func func(in any, param any) (any, error)

// Bindings returns the filter set templates call by name. The functions
// operate on the plain data shapes the template engine hands over
// ([]any of map[string]any rows) rather than on table.Table, since by the
// time a template runs the context has been flattened to plain Go data.
func Bindings() map[string]Func {
	return map[string]Func{
		"hyphen_range_to_list": hyphenRangeToList,
		"merge_table_by_key":   mergeTableByKey,
		"table_flatten":        tableFlatten,
	}
}

func hyphenRangeToList(in any, _ any) (any, error) {
	spec, ok := in.(string)
	if !ok {
		return nil, fmt.Errorf("filter: hyphen_range_to_list wants a string, got %T", in)
	}
	return ExpandRange(spec)
}

func mergeTableByKey(in any, param any) (any, error) {
	rows, err := asRows(in, "merge_table_by_key")
	if err != nil {
		return nil, err
	}
	keyField, ok := param.(string)
	if !ok {
		return nil, fmt.Errorf("filter: merge_table_by_key wants a string key, got %T", param)
	}

	var order []string
	byKey := make(map[string]map[string]any)
	for _, row := range rows {
		key := fieldText(row[keyField])
		base, seen := byKey[key]
		if !seen {
			byKey[key] = row
			order = append(order, key)
			continue
		}
		for field, value := range row {
			if fieldText(value) != "" {
				base[field] = value
			}
		}
	}

	out := make([]any, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out, nil
}

func tableFlatten(in any, _ any) (any, error) {
	rows, err := asRows(in, "table_flatten")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("filter: table_flatten wants at least one row")
	}

	result := make(map[string]any, len(rows[0]))
	for field := range rows[0] {
		result[field] = ""
	}
	for _, row := range rows {
		for field, value := range row {
			if fieldText(value) != "" {
				result[field] = value
			}
		}
	}
	return []any{result}, nil
}

func asRows(in any, name string) ([]map[string]any, error) {
	items, ok := in.([]any)
	if !ok {
		return nil, fmt.Errorf("filter: %s wants a table, got %T", name, in)
	}
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("filter: %s wants rows, got %T", name, item)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// fieldText mirrors the "non-empty value" test templates rely on: empty
// string and nil are empty, everything else counts as populated.
func fieldText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
