package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-confmig/pkg/document"
	"github.com/goliatone/go-confmig/pkg/table"
)

func TestWriteTables_OneCSVPerTable(t *testing.T) {
	dir := t.TempDir()

	set := table.NewSet()
	set.PutTable("vlan", table.Table{
		table.RowOf("id", "10", "name", "voice"),
		table.RowOf("id", "20", "name", "data"),
	})
	set.PutTable("port", table.Table{
		table.RowOf("port", "ge1"),
	})
	opts, _ := document.DecodeJSONString(`{"region": "emea"}`)
	set.InjectOptions(opts)

	rows, err := WriteTables(dir, set)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rows != 3 {
		t.Fatalf("expected 3 data rows, got %d", rows)
	}

	data, err := os.ReadFile(filepath.Join(dir, "vlan.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d: %q", len(lines), lines)
	}
	if lines[0] != "id,name" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "10,voice" || lines[2] != "20,data" {
		t.Fatalf("unexpected rows: %q", lines[1:])
	}

	if _, err := os.Stat(filepath.Join(dir, "options.csv")); err == nil {
		t.Fatal("options entry should not be exported")
	}
}

func TestWriteTables_SkipsNonTabularEntries(t *testing.T) {
	dir := t.TempDir()

	set := table.NewSet()
	reshaped, _ := document.DecodeJSONString(`{"summary": "flat"}`)
	set.Put("reshaped", reshaped)

	rows, err := WriteTables(dir, set)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected no rows, got %d", rows)
	}
	if _, err := os.Stat(filepath.Join(dir, "reshaped.csv")); err == nil {
		t.Fatal("non-tabular entry should not be exported")
	}
}

func TestWriteFile_CreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xml", "device.xml")

	if err := WriteFile(path, []byte("<config/>")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<config/>" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestCountCommands_IgnoresBlankLines(t *testing.T) {
	raw := "hostname sw1\n\n   \nvlan 10\n"
	if got := CountCommands(raw); got != 2 {
		t.Fatalf("expected 2 commands, got %d", got)
	}
	if got := CountCommands(""); got != 0 {
		t.Fatalf("expected 0 commands for empty input, got %d", got)
	}
}
