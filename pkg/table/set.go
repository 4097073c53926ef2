package table

import (
	"github.com/goliatone/go-confmig/pkg/document"
)

// OptionsKey is the reserved table name under which conversion options are
// injected before templates render. Rule sets must not claim it.
const OptionsKey = "options"

// Set maps table names to their contents, preserving the order tables were
// first stored. After reshaping, an entry may hold any document shape, not
// just rows.
type Set struct {
	names   []string
	entries map[string]document.Value
}

// NewSet returns an empty table set.
func NewSet() *Set {
	return &Set{entries: make(map[string]document.Value)}
}

// PutTable stores extracted rows under name.
func (s *Set) PutTable(name string, t Table) {
	s.Put(name, t.Value())
}

// Put stores an arbitrary document value under name, appending the name on
// first sight and keeping its position on overwrite.
func (s *Set) Put(name string, v document.Value) {
	if _, exists := s.entries[name]; !exists {
		s.names = append(s.names, name)
	}
	s.entries[name] = v
}

// Get returns the entry for name and whether it exists.
func (s *Set) Get(name string) (document.Value, bool) {
	v, ok := s.entries[name]
	return v, ok
}

// Delete removes an entry, preserving the order of the rest.
func (s *Set) Delete(name string) {
	if _, ok := s.entries[name]; !ok {
		return
	}
	delete(s.entries, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Names returns table names in insertion order. The slice is shared;
// callers must not mutate it.
func (s *Set) Names() []string { return s.names }

// Len reports the entry count.
func (s *Set) Len() int { return len(s.names) }

// Prune drops every entry whose value is an empty sequence. Rule sets that
// matched nothing disappear here so reshape and conversion never see them.
func (s *Set) Prune() {
	var remove []string
	for _, name := range s.names {
		entry := s.entries[name]
		if entry.Kind() == document.KindSequence && entry.Len() == 0 {
			remove = append(remove, name)
		}
	}
	for _, name := range remove {
		s.Delete(name)
	}
}

// InjectOptions stores opts under the reserved options key so conversion
// templates can read tables and options from one context.
func (s *Set) InjectOptions(opts document.Value) {
	if !opts.IsValid() {
		opts = document.FromMapping(document.NewMapping())
	}
	s.Put(OptionsKey, opts)
}

// Value converts the set into an ordered document mapping, used for the
// response payload that echoes extracted tables back to the caller.
func (s *Set) Value() document.Value {
	m := document.NewMapping()
	for _, name := range s.names {
		m.Set(name, s.entries[name])
	}
	return document.FromMapping(m)
}

// Context flattens the set into plain Go data for the template engine: one
// key per table plus the injected options entry.
func (s *Set) Context() map[string]any {
	out := make(map[string]any, len(s.names))
	for _, name := range s.names {
		out[name] = s.entries[name].Interface()
	}
	return out
}
