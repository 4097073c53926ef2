// Package textfsm adapts the gotextfsm state-machine parser to the
// extraction Engine contract. Field order is recovered from the Value
// declarations in the rule-set source, since gotextfsm hands records back as
// unordered maps.
package textfsm

import (
	"fmt"
	"strings"

	"github.com/sirikothe/gotextfsm"

	"github.com/goliatone/go-confmig/pkg/extract"
	"github.com/goliatone/go-confmig/pkg/table"
)

// Engine implements extract.Engine on top of gotextfsm.
type Engine struct{}

var _ extract.Engine = (*Engine)(nil)

// New returns a TextFSM-backed extraction engine.
func New() *Engine {
	return &Engine{}
}

// Records parses raw against the rule set and returns one ordered row per
// matched record. Every declared value is present on every row; unmatched
// values come back as empty strings, and List values join with commas.
func (e *Engine) Records(rules extract.RuleSet, raw string) (table.Table, error) {
	fsm := gotextfsm.TextFSM{}
	if err := fsm.ParseString(rules.Source); err != nil {
		return nil, fmt.Errorf("textfsm: parse rule set %q: %w", rules.Name, err)
	}

	parser := gotextfsm.ParserOutput{}
	if err := parser.ParseTextString(raw, fsm, true); err != nil {
		return nil, fmt.Errorf("textfsm: run rule set %q: %w", rules.Name, err)
	}

	fields := valueOrder(rules.Source)
	rows := make(table.Table, 0, len(parser.Dict))
	for _, record := range parser.Dict {
		row := table.NewRow()
		for _, field := range fields {
			row.Set(field, fieldText(record[field]))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// valueOrder scans the rule-set source for Value declarations and returns
// the declared names in file order. Declaration shape:
//
//	Value [Filldown|Key|Required|List|Fillup ...] NAME (regex)
func valueOrder(source string) []string {
	var fields []string
	for _, line := range strings.Split(source, "\n") {
		tokens := strings.Fields(line)
		if len(tokens) < 3 || tokens[0] != "Value" {
			continue
		}
		for i := 2; i < len(tokens); i++ {
			if strings.HasPrefix(tokens[i], "(") {
				fields = append(fields, tokens[i-1])
				break
			}
		}
	}
	return fields
}

func fieldText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}
