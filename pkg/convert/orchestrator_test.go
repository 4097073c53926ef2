package convert

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-confmig/pkg/document"
	"github.com/goliatone/go-confmig/pkg/table"
)

// captureRenderer serves canned outputs keyed by template name and records
// the context data each render received.
type captureRenderer struct {
	outputs map[string]string
	seen    []map[string]any
}

func (r *captureRenderer) Render(name string, data any) (string, error) {
	ctx, _ := data.(map[string]any)
	r.seen = append(r.seen, ctx)
	out, ok := r.outputs[name]
	if !ok {
		return "", fmt.Errorf("no template %q", name)
	}
	return out, nil
}

func (r *captureRenderer) RenderString(content string, data any) (string, error) {
	return content, nil
}

func profileFS() fstest.MapFS {
	return fstest.MapFS{
		"default/system/hostname.j2": &fstest.MapFile{Data: []byte("t")},
		"default/system/ntp.j2":      &fstest.MapFile{Data: []byte("t")},
		"default/vlans/vlan.j2":      &fstest.MapFile{Data: []byte("t")},
		"default/vlans/notes.txt":    &fstest.MapFile{Data: []byte("skipped")},
		"other/system/hostname.j2":   &fstest.MapFile{Data: []byte("t")},
	}
}

func TestConvert_AggregatesGroupsAndTemplates(t *testing.T) {
	renderer := &captureRenderer{outputs: map[string]string{
		"default/system/hostname.j2": `[{"hostname": "sw1"}]`,
		"default/system/ntp.j2":      `[{"ntp": "10.0.0.1"}]`,
		"default/vlans/vlan.j2":      `[{"id": 10}, {"id": 20}]`,
	}}
	orchestrator, err := New(profileFS(), renderer)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	set := table.NewSet()
	set.PutTable("vlan", table.Table{table.RowOf("id", "10")})

	doc, err := orchestrator.Convert(context.Background(), set, "default", document.Value{})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	groups := doc.Mapping().Keys()
	if len(groups) != 2 || groups[0] != "system" || groups[1] != "vlans" {
		t.Fatalf("unexpected groups: %#v", groups)
	}

	system, _ := doc.Mapping().Get("system")
	if system.Len() != 2 {
		t.Fatalf("expected 2 system entries, got %d", system.Len())
	}
	vlans, _ := doc.Mapping().Get("vlans")
	if vlans.Len() != 2 {
		t.Fatalf("expected 2 vlan entries, got %d", vlans.Len())
	}
}

func TestConvert_InjectsOptionsIntoTemplateContext(t *testing.T) {
	renderer := &captureRenderer{outputs: map[string]string{
		"default/system/hostname.j2": `[]`,
		"default/system/ntp.j2":      `[]`,
		"default/vlans/vlan.j2":      `[]`,
	}}
	orchestrator, _ := New(profileFS(), renderer)

	set := table.NewSet()
	opts, _ := document.DecodeJSONString(`{"region": "emea"}`)

	if _, err := orchestrator.Convert(context.Background(), set, "default", opts); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(renderer.seen) == 0 {
		t.Fatal("expected at least one render")
	}
	options, ok := renderer.seen[0][table.OptionsKey].(map[string]any)
	if !ok || options["region"] != "emea" {
		t.Fatalf("options missing from context: %#v", renderer.seen[0])
	}
}

func TestConvert_NonArrayOutputIsTemplateError(t *testing.T) {
	renderer := &captureRenderer{outputs: map[string]string{
		"default/system/hostname.j2": `{"not": "an array"}`,
		"default/system/ntp.j2":      `[]`,
		"default/vlans/vlan.j2":      `[]`,
	}}
	orchestrator, _ := New(profileFS(), renderer)

	_, err := orchestrator.Convert(context.Background(), table.NewSet(), "default", document.Value{})
	if err == nil {
		t.Fatal("expected an error")
	}
	var templateErr *TemplateError
	if !errors.As(err, &templateErr) {
		t.Fatalf("expected a *TemplateError, got %T: %v", err, err)
	}
	if templateErr.Template != "default/system/hostname.j2" {
		t.Fatalf("error should name the template: %q", templateErr.Template)
	}
	if templateErr.Rendered != `{"not": "an array"}` {
		t.Fatalf("error should carry the rendered text: %q", templateErr.Rendered)
	}
}

func TestConvert_UnparseableOutputIsTemplateError(t *testing.T) {
	renderer := &captureRenderer{outputs: map[string]string{
		"default/system/hostname.j2": `[{"broken":]`,
		"default/system/ntp.j2":      `[]`,
		"default/vlans/vlan.j2":      `[]`,
	}}
	orchestrator, _ := New(profileFS(), renderer)

	_, err := orchestrator.Convert(context.Background(), table.NewSet(), "default", document.Value{})
	var templateErr *TemplateError
	if !errors.As(err, &templateErr) {
		t.Fatalf("expected a *TemplateError, got %T: %v", err, err)
	}
}

func TestConvert_UnknownProfileFails(t *testing.T) {
	orchestrator, _ := New(profileFS(), &captureRenderer{})
	if _, err := orchestrator.Convert(context.Background(), table.NewSet(), "missing", document.Value{}); err == nil {
		t.Fatal("expected unknown profile to fail")
	}
}

func TestConvert_EmptyProfileNameFails(t *testing.T) {
	orchestrator, _ := New(profileFS(), &captureRenderer{})
	if _, err := orchestrator.Convert(context.Background(), table.NewSet(), "", document.Value{}); err == nil {
		t.Fatal("expected empty profile name to fail")
	}
}
