// Package pongo2tpl backs the template.Renderer seam with a pongo2 template
// set. Transform templates are authored in Django/Jinja syntax, so pongo2 is
// the natural engine; nothing outside this package imports it.
package pongo2tpl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-confmig/pkg/render/template"
)

// FilterFunc is the engine-agnostic filter shape callers register: input
// value in, optional parameter, transformed value out.
type FilterFunc func(in any, param any) (any, error)

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	baseDir string
	files   fs.FS
	filters map[string]FilterFunc
	globals map[string]any
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithFilters registers named filters templates can apply. Filter names are
// process-global in pongo2; registering the same name with a different
// function across engines is an error surfaced at construction.
func WithFilters(filters map[string]FilterFunc) Option {
	return func(cfg *config) {
		if len(filters) == 0 {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]FilterFunc, len(filters))
		}
		for name, fn := range filters {
			cfg.filters[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGlobals seeds context values available to every template.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// Engine satisfies template.Renderer using a pongo2 template set scoped to
// one construction, so concurrent pipeline invocations never share loader
// state.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

var _ template.Renderer = (*Engine)(nil)

// New constructs an Engine from the provided options. At least one template
// source (base dir or fs.FS) is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.files == nil {
		return nil, errors.New("pongo2tpl: need a base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("pongo2tpl: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}

	engine := &Engine{
		set:       pongo2.NewSet("confmig", loaders...),
		templates: make(map[string]*pongo2.Template),
	}

	for name, fn := range cfg.filters {
		if err := registerFilter(name, fn); err != nil {
			return nil, fmt.Errorf("pongo2tpl: register filter %q: %w", name, err)
		}
	}
	if len(cfg.globals) > 0 {
		globals, err := convertToContext(cfg.globals)
		if err != nil {
			return nil, fmt.Errorf("pongo2tpl: convert globals: %w", err)
		}
		engine.set.Globals = globals
	}

	return engine, nil
}

// Render executes the named template file against data.
func (e *Engine) Render(name string, data any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo2tpl: engine is nil")
	}

	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, name, data)
}

// RenderString parses content as inline template text and executes it.
func (e *Engine) RenderString(content string, data any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo2tpl: engine is nil")
	}

	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("pongo2tpl: parse template string: %w", err)
	}
	return e.execute(tmpl, "inline", data)
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any) (string, error) {
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("pongo2tpl: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo2tpl: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("pongo2tpl: load template %q: %w", name, err)
	}

	e.templates[name] = tmpl
	return tmpl, nil
}

func registerFilter(name string, fn FilterFunc) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("pongo2tpl: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		// Same filter set registered by an earlier engine in this process.
		return nil
	}

	wrapped := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
	return pongo2.RegisterFilter(name, wrapped)
}

func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	default:
		// JSON round trip normalizes arbitrary data into the map shape a
		// pongo2 context wants.
		m, err := jsonToMap(v)
		if err != nil {
			return nil, err
		}
		return pongo2.Context(m), nil
	}
}

func jsonToMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	// Numbers stay as json.Number so templates emit the literal text instead
	// of a reformatted float.
	dec.UseNumber()
	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
