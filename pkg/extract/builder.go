package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-confmig/pkg/document"
	"github.com/goliatone/go-confmig/pkg/table"
	"github.com/goliatone/go-confmig/pkg/render/template"
)

const (
	// RuleExt marks rule-set files inside the rule directory.
	RuleExt = ".textfsm"
	// ReshapeExt marks the optional per-table reshape template, named after
	// the table it rewrites.
	ReshapeExt = ".json.j2"
)

// Builder runs the extraction half of the pipeline: every rule set in the
// rule directory against the raw text, empty tables pruned, then each
// table's optional reshape template applied.
type Builder struct {
	rules    fs.FS
	engine   Engine
	renderer template.Renderer
}

// NewBuilder wires a rule directory, an extraction engine, and the template
// renderer used for reshape templates. The renderer must resolve template
// names relative to the same rule directory.
func NewBuilder(rules fs.FS, engine Engine, renderer template.Renderer) (*Builder, error) {
	if rules == nil {
		return nil, errors.New("extract: rule filesystem is required")
	}
	if engine == nil {
		return nil, errors.New("extract: engine is required")
	}
	return &Builder{rules: rules, engine: engine, renderer: renderer}, nil
}

// Extract runs every rule set against raw and returns the resulting table
// set. Rule sets that matched nothing still occupy their key; Prune removes
// them. Tables appear in rule-file enumeration order (sorted by name).
func (b *Builder) Extract(ctx context.Context, raw string) (*table.Set, error) {
	entries, err := fs.ReadDir(b.rules, ".")
	if err != nil {
		return nil, fmt.Errorf("extract: read rule directory: %w", err)
	}

	set := table.NewSet()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), RuleExt) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), RuleExt)
		source, err := fs.ReadFile(b.rules, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("extract: read rule set %q: %w", name, err)
		}

		rows, err := b.engine.Records(RuleSet{Name: name, Source: string(source)}, raw)
		if err != nil {
			return nil, fmt.Errorf("extract: rule set %q: %w", name, err)
		}
		set.PutTable(name, rows)
	}
	return set, nil
}

// Prune removes every table whose row list is empty, preserving the order
// of the rest.
func (b *Builder) Prune(set *table.Set) {
	set.Prune()
}

// Reshape applies each table's reshape template, when one exists, replacing
// the table's rows with the parsed render output. Tables without a template
// pass through unchanged. A render that fails to parse as structured data
// propagates as an error.
func (b *Builder) Reshape(ctx context.Context, set *table.Set) error {
	if b.renderer == nil {
		return nil
	}

	for _, name := range set.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}

		templateName := name + ReshapeExt
		if _, err := fs.Stat(b.rules, templateName); err != nil {
			continue
		}

		entry, _ := set.Get(name)
		rendered, err := b.renderer.Render(templateName, map[string]any{
			"data": entry.Interface(),
		})
		if err != nil {
			return fmt.Errorf("extract: reshape %q: %w", name, err)
		}

		parsed, err := document.DecodeJSONString(rendered)
		if err != nil {
			return fmt.Errorf("extract: reshape %q: parse rendered output: %w", name, err)
		}
		set.Put(name, parsed)
	}
	return nil
}
