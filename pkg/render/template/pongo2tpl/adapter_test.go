package pongo2tpl

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"
)

func TestNew_RequiresTemplateSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected construction without a source to fail")
	}
}

func TestRenderString_InterpolatesContext(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString(`hostname {{ system.hostname }}`, map[string]any{
		"system": map[string]any{"hostname": "sw1"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "hostname sw1" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderString_KeepsNumberLiterals(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString(`mtu {{ mtu }}`, map[string]any{"mtu": 9100})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "mtu 9100" {
		t.Fatalf("number literal was reformatted: %q", out)
	}
}

func TestRender_LoadsTemplatesFromFS(t *testing.T) {
	files := fstest.MapFS{
		"greeting.j2": &fstest.MapFile{Data: []byte(`hello {{ name }}`)},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render("greeting.j2", map[string]any{"name": "world"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "hello world" {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, err := engine.Render("missing.j2", nil); err == nil {
		t.Fatal("expected missing template to fail")
	}
}

func TestWithFilters_AppliesCustomFilter(t *testing.T) {
	engine, err := New(
		WithFS(fstest.MapFS{}),
		WithFilters(map[string]FilterFunc{
			"shout": func(in any, _ any) (any, error) {
				return strings.ToUpper(fmt.Sprintf("%v", in)), nil
			},
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString(`{{ word|shout }}`, map[string]any{"word": "quiet"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "QUIET" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestWithFilters_ReRegistrationIsIdempotent(t *testing.T) {
	filters := map[string]FilterFunc{
		"noop_passthrough": func(in any, _ any) (any, error) { return in, nil },
	}
	if _, err := New(WithFS(fstest.MapFS{}), WithFilters(filters)); err != nil {
		t.Fatalf("first engine: %v", err)
	}
	if _, err := New(WithFS(fstest.MapFS{}), WithFilters(filters)); err != nil {
		t.Fatalf("second engine with same filters: %v", err)
	}
}

func TestWithGlobals_SeedsEveryRender(t *testing.T) {
	engine, err := New(
		WithFS(fstest.MapFS{}),
		WithGlobals(map[string]any{"vendor": "acme"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString(`{{ vendor }}`, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "acme" {
		t.Fatalf("unexpected output: %q", out)
	}
}
