// Package confmig converts device configurations written in one vendor's
// command-line syntax into another vendor's syntax plus an XML rendering of
// the same structured data. Raw text goes in, rule sets extract named
// tables, a conversion profile's templates reshape them into an output
// document, and serializers turn that document into target-syntax text.
package confmig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-confmig/internal/textfsm"
	"github.com/goliatone/go-confmig/pkg/convert"
	"github.com/goliatone/go-confmig/pkg/document"
	"github.com/goliatone/go-confmig/pkg/extract"
	"github.com/goliatone/go-confmig/pkg/filter"
	"github.com/goliatone/go-confmig/pkg/render"
	"github.com/goliatone/go-confmig/pkg/render/template/pongo2tpl"
	"github.com/goliatone/go-confmig/pkg/table"
)

// TemplateError is re-exported so callers can match conversion failures
// without importing pkg/convert.
type TemplateError = convert.TemplateError

// Serializer names registered by default.
const (
	SerializerXML      = "xml"
	SerializerCommands = "commands"
)

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithRuleFS supplies the rule directory holding one .textfsm file per
// table plus optional <table>.json.j2 reshape templates.
func WithRuleFS(files fs.FS) Option {
	return func(p *Pipeline) {
		p.rules = files
	}
}

// WithRuleDir is WithRuleFS over a directory path.
func WithRuleDir(dir string) Option {
	return WithRuleFS(os.DirFS(dir))
}

// WithConverterFS supplies the converter directory holding one subdirectory
// per profile, each with one subdirectory per group of .j2 templates.
func WithConverterFS(files fs.FS) Option {
	return func(p *Pipeline) {
		p.converter = files
	}
}

// WithConverterDir is WithConverterFS over a directory path.
func WithConverterDir(dir string) Option {
	return WithConverterFS(os.DirFS(dir))
}

// WithEngine injects a custom extraction engine. The default wraps TextFSM.
func WithEngine(engine extract.Engine) Option {
	return func(p *Pipeline) {
		p.engine = engine
	}
}

// WithSerializers injects a serializer registry, replacing the default XML
// and command-line pair. Registration of defaults happens in New, so the
// caller owns the full set.
func WithSerializers(registry *render.Registry) Option {
	return func(p *Pipeline) {
		p.serializers = registry
	}
}

// Pipeline owns the static configuration of one conversion service: where
// rules and converter profiles live, which extraction engine runs, and which
// serializers are available. Each Convert call builds its own template
// environment, so one Pipeline is safe for concurrent invocations.
type Pipeline struct {
	rules       fs.FS
	converter   fs.FS
	engine      extract.Engine
	serializers *render.Registry
}

// New constructs a Pipeline. Rule and converter directories are required;
// the extraction engine and serializer registry fall back to the built-in
// implementations.
func New(options ...Option) (*Pipeline, error) {
	p := &Pipeline{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}

	if p.rules == nil {
		return nil, errors.New("confmig: rule directory is required")
	}
	if p.converter == nil {
		return nil, errors.New("confmig: converter directory is required")
	}
	if p.engine == nil {
		p.engine = textfsm.New()
	}
	if p.serializers == nil {
		p.serializers = render.NewRegistry()
		registerDefaults(p.serializers)
	}
	return p, nil
}

// Result carries everything one conversion produced: the table set after
// reshaping (including the injected options entry) and the aggregated output
// document.
type Result struct {
	Tables   *table.Set
	Document document.Value
}

// Convert runs the full pipeline on raw configuration text: extraction,
// pruning, reshaping, then profile conversion. Failures surface synchronously
// with no partial result.
func (p *Pipeline) Convert(ctx context.Context, raw, profile string, opts document.Value) (*Result, error) {
	set, err := p.ExtractTables(ctx, raw)
	if err != nil {
		return nil, err
	}
	doc, err := p.ConvertTables(ctx, set, profile, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Tables: set, Document: doc}, nil
}

// ExtractTables runs the extraction half only: every rule set against raw,
// empty tables pruned, reshape templates applied. Useful for callers that
// export tables (CSV artifacts) before converting.
func (p *Pipeline) ExtractTables(ctx context.Context, raw string) (*table.Set, error) {
	renderer, err := pongo2tpl.New(
		pongo2tpl.WithFS(p.rules),
		pongo2tpl.WithFilters(templateFilters()),
	)
	if err != nil {
		return nil, fmt.Errorf("confmig: rule template engine: %w", err)
	}

	builder, err := extract.NewBuilder(p.rules, p.engine, renderer)
	if err != nil {
		return nil, err
	}

	set, err := builder.Extract(ctx, raw)
	if err != nil {
		return nil, err
	}
	builder.Prune(set)
	if err := builder.Reshape(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// ConvertTables runs the conversion half against an already-extracted table
// set.
func (p *Pipeline) ConvertTables(ctx context.Context, set *table.Set, profile string, opts document.Value) (document.Value, error) {
	renderer, err := pongo2tpl.New(
		pongo2tpl.WithFS(p.converter),
		pongo2tpl.WithFilters(templateFilters()),
	)
	if err != nil {
		return document.Value{}, fmt.Errorf("confmig: converter template engine: %w", err)
	}

	orchestrator, err := convert.New(p.converter, renderer)
	if err != nil {
		return document.Value{}, err
	}
	return orchestrator.Convert(ctx, set, profile, opts)
}

// Serialize renders doc with the named serializer.
func (p *Pipeline) Serialize(doc document.Value, name string) ([]byte, error) {
	serializer, err := p.serializers.Get(name)
	if err != nil {
		return nil, err
	}
	return serializer.Serialize(doc)
}

// Serializers exposes the registry for host adapters that enumerate
// available renderings.
func (p *Pipeline) Serializers() *render.Registry {
	return p.serializers
}

func templateFilters() map[string]pongo2tpl.FilterFunc {
	bindings := filter.Bindings()
	out := make(map[string]pongo2tpl.FilterFunc, len(bindings))
	for name, fn := range bindings {
		out[name] = pongo2tpl.FilterFunc(fn)
	}
	return out
}
