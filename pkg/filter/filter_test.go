package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-confmig/pkg/table"
)

func TestExpandRange(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []int
	}{
		{"single value", "7", []int{7}},
		{"simple range", "1-4", []int{1, 2, 3, 4}},
		{"degenerate range", "3-3", []int{3}},
		{"mixed tokens", "1-3,6, 8-9,12", []int{1, 2, 3, 6, 8, 9, 12}},
		{"spaces around parts", " 2 - 4 ", []int{2, 3, 4}},
		{"reversed range is empty", "9-5", nil},
		{"reversed among others", "1,9-5,3", []int{1, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandRange(tc.spec)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected expansion (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandRange_TooManyHyphens(t *testing.T) {
	_, err := ExpandRange("1-2-3")
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "format error in 1-2-3" {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
}

func TestExpandRange_NonNumericToken(t *testing.T) {
	if _, err := ExpandRange("1,x"); err == nil {
		t.Fatal("expected an error for a non-numeric token")
	}
	if _, err := ExpandRange("a-4"); err == nil {
		t.Fatal("expected an error for a non-numeric bound")
	}
}

func TestMergeByKey_CombinesRowsInFirstOccurrenceOrder(t *testing.T) {
	rows := table.Table{
		table.RowOf("port", "ge1", "vlan", "10", "speed", ""),
		table.RowOf("port", "ge2", "vlan", "20"),
		table.RowOf("port", "ge1", "speed", "1000", "vlan", ""),
	}

	got := MergeByKey(rows, "port")
	if len(got) != 2 {
		t.Fatalf("expected 2 merged rows, got %d", len(got))
	}
	if got[0].Get("port") != "ge1" || got[1].Get("port") != "ge2" {
		t.Fatalf("unexpected key order: %q, %q", got[0].Get("port"), got[1].Get("port"))
	}
	if got[0].Get("vlan") != "10" {
		t.Fatalf("empty later value should not overwrite: got %q", got[0].Get("vlan"))
	}
	if got[0].Get("speed") != "1000" {
		t.Fatalf("later non-empty value should overwrite: got %q", got[0].Get("speed"))
	}
}

func TestMergeByKey_FirstRowKeepsFieldOrder(t *testing.T) {
	rows := table.Table{
		table.RowOf("name", "r1", "a", "1"),
		table.RowOf("name", "r1", "b", "2"),
	}
	got := MergeByKey(rows, "name")
	fields := got[0].Fields()
	want := []string{"name", "a", "b"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("unexpected field order (-want +got):\n%s", diff)
	}
}

func TestFlatten_MergesAllRowsIntoOne(t *testing.T) {
	rows := table.Table{
		table.RowOf("hostname", "sw1", "domain", ""),
		table.RowOf("domain", "example.net"),
		table.RowOf("contact", "noc"),
	}

	got := Flatten(rows)
	if len(got) != 1 {
		t.Fatalf("expected a single row, got %d", len(got))
	}
	row := got[0]
	if row.Get("hostname") != "sw1" || row.Get("domain") != "example.net" || row.Get("contact") != "noc" {
		t.Fatalf("unexpected merge: %#v", row)
	}
	fields := row.Fields()
	if fields[0] != "hostname" || fields[1] != "domain" {
		t.Fatalf("first row should seed the schema: %#v", fields)
	}
}

func TestFlatten_EmptyTableIsNil(t *testing.T) {
	if got := Flatten(nil); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
}

func TestBindings_HyphenRangeToList(t *testing.T) {
	fn := Bindings()["hyphen_range_to_list"]
	out, err := fn("1-3", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, out); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
	if _, err := fn(42, nil); err == nil {
		t.Fatal("expected an error for non-string input")
	}
}

func TestBindings_MergeTableByKey(t *testing.T) {
	fn := Bindings()["merge_table_by_key"]
	in := []any{
		map[string]any{"port": "ge1", "vlan": "10"},
		map[string]any{"port": "ge1", "speed": "1000"},
		map[string]any{"port": "ge2", "vlan": "20"},
	}

	out, err := fn(in, "port")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	rows, ok := out.([]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("unexpected output: %#v", out)
	}
	first := rows[0].(map[string]any)
	if first["port"] != "ge1" || first["vlan"] != "10" || first["speed"] != "1000" {
		t.Fatalf("unexpected merged row: %#v", first)
	}
}

func TestBindings_TableFlatten(t *testing.T) {
	fn := Bindings()["table_flatten"]
	in := []any{
		map[string]any{"hostname": "sw1", "domain": ""},
		map[string]any{"domain": "example.net"},
	}

	out, err := fn(in, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	rows, ok := out.([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("unexpected output: %#v", out)
	}
	row := rows[0].(map[string]any)
	if row["hostname"] != "sw1" || row["domain"] != "example.net" {
		t.Fatalf("unexpected flattened row: %#v", row)
	}

	if _, err := fn([]any{}, nil); err == nil {
		t.Fatal("expected an error for an empty table")
	}
}
