// Package extract turns raw device configuration text into named tables. A
// rule directory supplies one line-pattern rule set per table plus optional
// per-table reshape templates; the extraction engine itself sits behind the
// Engine interface so the pipeline only depends on its record contract.
package extract

import (
	"github.com/goliatone/go-confmig/pkg/table"
)

// RuleSet is one named line-pattern definition read from the rule directory.
// Name is the file base name without extension and doubles as the table
// name.
type RuleSet struct {
	Name   string
	Source string
}

// Engine runs one rule set against raw text and returns the ordered records
// it matched. Zero matches is valid and yields an empty table.
type Engine interface {
	Records(rules RuleSet, raw string) (table.Table, error)
}
