package convert

import (
	"fmt"
)

// TemplateError reports a conversion template whose render did not parse as
// a JSON array. It aborts the whole conversion; no partial document is
// returned alongside it. Rendered carries the raw text that failed to parse
// so template authors can see exactly what the engine produced.
type TemplateError struct {
	Template string
	Rendered string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("convert: template %s produced unparseable output: %v\n%s", e.Template, e.Err, e.Rendered)
}

func (e *TemplateError) Unwrap() error { return e.Err }
