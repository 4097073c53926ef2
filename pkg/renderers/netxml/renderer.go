// Package netxml renders the output document as XML under the fixed
// `config` root element, delegating the structure-to-XML conversion to mxj.
package netxml

import (
	"fmt"
	"strings"

	mxj "github.com/clbanning/mxj/v2"

	"github.com/goliatone/go-confmig/pkg/document"
	"github.com/goliatone/go-confmig/pkg/render"
)

// wrapperTag is the artificial element introduced when the document's top
// level is not a mapping. Its tags are stripped from the rendered text so
// `config` stays the only top-level element.
const wrapperTag = "xml_container"

// Serializer implements render.Serializer for XML output.
type Serializer struct {
	indent string
}

var _ render.Serializer = (*Serializer)(nil)

// New returns an XML serializer using two-space indentation.
func New() *Serializer {
	return &Serializer{indent: "  "}
}

// Name implements render.Serializer.
func (s *Serializer) Name() string { return "xml" }

// ContentType implements render.Serializer.
func (s *Serializer) ContentType() string { return "application/xml" }

// Serialize renders doc under the `config` root. A list or scalar top level
// is funneled through the wrapper element, whose opening and closing tags
// are removed textually afterwards.
func (s *Serializer) Serialize(doc document.Value) ([]byte, error) {
	payload, ok := doc.Interface().(map[string]any)
	if !ok {
		payload = map[string]any{wrapperTag: doc.Interface()}
	}

	raw, err := mxj.Map(payload).XmlIndent("", s.indent, "config")
	if err != nil {
		return nil, fmt.Errorf("netxml: encode document: %w", err)
	}

	cleaned := strings.ReplaceAll(string(raw), "<"+wrapperTag+">", "")
	cleaned = strings.ReplaceAll(cleaned, "</"+wrapperTag+">", "")
	return []byte(cleaned), nil
}
