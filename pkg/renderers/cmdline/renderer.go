// Package cmdline flattens the output document into ordered target-syntax
// command lines. Every scalar leaf becomes one line whose words are the path
// of mapping keys leading to it, seeded with the `config` prefix.
package cmdline

import (
	"strings"

	"github.com/goliatone/go-confmig/pkg/document"
	"github.com/goliatone/go-confmig/pkg/render"
)

const rootPrefix = "config "

// Serializer implements render.Serializer for flat command output.
type Serializer struct{}

var _ render.Serializer = (*Serializer)(nil)

// New returns a command-line serializer.
func New() *Serializer {
	return &Serializer{}
}

// Name implements render.Serializer.
func (s *Serializer) Name() string { return "commands" }

// ContentType implements render.Serializer.
func (s *Serializer) ContentType() string { return "text/plain; charset=utf-8" }

// Serialize renders doc as newline-joined command lines, no trailing
// newline.
func (s *Serializer) Serialize(doc document.Value) ([]byte, error) {
	return []byte(strings.Join(Lines(doc), "\n")), nil
}

// Lines flattens doc depth first. Mappings extend the accumulated prefix
// with their field names; a `name` field is promoted into the prefix ahead
// of every sibling field and excluded from iteration. List elements share
// their parent's prefix unchanged, since they represent repeated blocks
// under one path. Scalars emit one line each, in traversal order.
//
// The traversal reads the visited structure without mutating it.
func Lines(doc document.Value) []string {
	var out []string
	walk(doc, rootPrefix, &out)
	return out
}

func walk(node document.Value, prefix string, out *[]string) {
	switch node.Kind() {
	case document.KindMapping:
		m := node.Mapping()
		nameSegment := ""
		if nameValue, ok := m.Get("name"); ok && nameValue.Kind() == document.KindScalar {
			nameSegment = nameValue.Text() + " "
		}
		for _, key := range m.Keys() {
			if key == "name" {
				continue
			}
			child, _ := m.Get(key)
			walk(child, prefix+nameSegment+key+" ", out)
		}
	case document.KindSequence:
		for _, item := range node.Items() {
			walk(item, prefix, out)
		}
	default:
		// The prefix always carries exactly one trailing space; trimming it
		// and re-adding one keeps a single separator before the scalar.
		*out = append(*out, prefix[:len(prefix)-1]+" "+node.Text())
	}
}
