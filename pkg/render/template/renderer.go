// Package template defines the narrow seam between the conversion pipeline
// and whatever engine performs template substitution. The core only ever
// hands a template name and a data context across this boundary and expects
// rendered text back, so the pipeline carries zero dependency on the
// templating technology.
package template

// Renderer renders a named template, or inline template content, against a
// data context.
type Renderer interface {
	Render(name string, data any) (string, error)
	RenderString(content string, data any) (string, error)
}
