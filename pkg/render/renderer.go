package render

import (
	"github.com/goliatone/go-confmig/pkg/document"
)

// Serializer converts an output document into one textual rendering of the
// migrated configuration (XML, flat command lines, ...).
type Serializer interface {
	Name() string
	ContentType() string
	Serialize(doc document.Value) ([]byte, error)
}
