package confmig

import (
	"github.com/goliatone/go-confmig/pkg/render"
	"github.com/goliatone/go-confmig/pkg/renderers/cmdline"
	"github.com/goliatone/go-confmig/pkg/renderers/netxml"
)

// registerDefaults wires the built-in serializers: XML under the `config`
// root and flat target-syntax command lines.
func registerDefaults(registry *render.Registry) {
	registry.MustRegister(netxml.New())
	registry.MustRegister(cmdline.New())
}
