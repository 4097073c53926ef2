// Package convert aggregates templated conversion results into the output
// document. A conversion profile is a directory of groups; each group holds
// one or more templates whose rendered JSON arrays concatenate into that
// group's result list.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-confmig/pkg/document"
	"github.com/goliatone/go-confmig/pkg/render/template"
	"github.com/goliatone/go-confmig/pkg/table"
)

// TemplateExt marks conversion template files inside group directories.
const TemplateExt = ".j2"

// Orchestrator renders a profile's conversion templates against a table set
// and aggregates the results per group.
type Orchestrator struct {
	profiles fs.FS
	renderer template.Renderer
}

// New wires the converter directory (one subdirectory per profile) and the
// template renderer, which must resolve names relative to the same
// directory.
func New(profiles fs.FS, renderer template.Renderer) (*Orchestrator, error) {
	if profiles == nil {
		return nil, errors.New("convert: profile filesystem is required")
	}
	if renderer == nil {
		return nil, errors.New("convert: renderer is required")
	}
	return &Orchestrator{profiles: profiles, renderer: renderer}, nil
}

// Convert injects opts into the table set under the reserved options key,
// renders every template of every group in the profile, and returns the
// aggregated output document: one entry per group, in group enumeration
// order, holding the concatenation of its templates' JSON arrays.
//
// The first template whose render fails to parse as a JSON array aborts the
// whole conversion with a *TemplateError. No partial document is returned.
func (o *Orchestrator) Convert(ctx context.Context, set *table.Set, profile string, opts document.Value) (document.Value, error) {
	if profile == "" {
		return document.Value{}, errors.New("convert: profile name is required")
	}

	set.InjectOptions(opts)
	data := set.Context()

	groups, err := fs.ReadDir(o.profiles, profile)
	if err != nil {
		return document.Value{}, fmt.Errorf("convert: profile %q: %w", profile, err)
	}

	out := document.NewMapping()
	for _, group := range groups {
		if !group.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return document.Value{}, err
		}

		result, err := o.convertGroup(ctx, data, profile, group.Name())
		if err != nil {
			return document.Value{}, err
		}
		out.Set(group.Name(), result)
	}
	return document.FromMapping(out), nil
}

func (o *Orchestrator) convertGroup(ctx context.Context, data map[string]any, profile, group string) (document.Value, error) {
	dir := path.Join(profile, group)
	files, err := fs.ReadDir(o.profiles, dir)
	if err != nil {
		return document.Value{}, fmt.Errorf("convert: group %q: %w", dir, err)
	}

	result := document.Sequence()
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), TemplateExt) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return document.Value{}, err
		}

		name := path.Join(dir, file.Name())
		rendered, err := o.renderer.Render(name, data)
		if err != nil {
			return document.Value{}, fmt.Errorf("convert: render %s: %w", name, err)
		}

		parsed, err := document.DecodeJSONString(rendered)
		if err != nil {
			return document.Value{}, &TemplateError{Template: name, Rendered: rendered, Err: err}
		}
		if parsed.Kind() != document.KindSequence {
			return document.Value{}, &TemplateError{
				Template: name,
				Rendered: rendered,
				Err:      errors.New("rendered output is not a JSON array"),
			}
		}
		result = result.Append(parsed.Items()...)
	}
	return result, nil
}
