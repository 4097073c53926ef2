package document

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind discriminates the three node shapes a Value can take.
type Kind int

const (
	KindInvalid Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

// Value is a tagged variant over scalars, ordered sequences, and
// insertion-ordered mappings. The zero Value is invalid.
type Value struct {
	kind    Kind
	scalar  any
	seq     []Value
	mapping *Mapping
}

// Scalar wraps a scalar payload. Accepted payloads are string, json.Number,
// bool, and nil; anything else is stored via its fmt representation.
func Scalar(v any) Value {
	switch v.(type) {
	case string, json.Number, bool, nil:
		return Value{kind: KindScalar, scalar: v}
	default:
		return Value{kind: KindScalar, scalar: fmt.Sprintf("%v", v)}
	}
}

// String wraps a string scalar.
func String(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Sequence wraps an ordered list of values.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, seq: items}
}

// FromMapping wraps an ordered mapping.
func FromMapping(m *Mapping) Value {
	return Value{kind: KindMapping, mapping: m}
}

// Kind reports the node shape.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether the value holds any node at all.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// ScalarValue returns the scalar payload. Callers must check Kind first.
func (v Value) ScalarValue() any { return v.scalar }

// Text renders a scalar as the text that appears in command output: strings
// verbatim, numbers as their JSON literal, booleans lowercase, null empty.
func (v Value) Text() string {
	switch s := v.scalar.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		if s {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Items returns the sequence elements. Callers must check Kind first.
func (v Value) Items() []Value { return v.seq }

// Mapping returns the underlying ordered mapping, or nil for other kinds.
func (v Value) Mapping() *Mapping { return v.mapping }

// Append returns a sequence value with items appended. Appending to an
// invalid value starts a fresh sequence.
func (v Value) Append(items ...Value) Value {
	if v.kind != KindSequence && v.kind != KindInvalid {
		return v
	}
	return Value{kind: KindSequence, seq: append(v.seq, items...)}
}

// Len reports element count for sequences, entry count for mappings, and
// zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return v.mapping.Len()
	default:
		return 0
	}
}

// Interface converts the tree into plain Go data (map[string]any, []any,
// scalars) for consumers that cannot work with ordered mappings, such as the
// template context and the XML encoder. Mapping order is lost here.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSequence:
		out := make([]any, 0, len(v.seq))
		for _, item := range v.seq {
			out = append(out, item.Interface())
		}
		return out
	case KindMapping:
		out := make(map[string]any, v.mapping.Len())
		for _, key := range v.mapping.Keys() {
			entry, _ := v.mapping.Get(key)
			out[key] = entry.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports deep equality. Mapping comparison is order-sensitive since
// order is part of the document contract. go-cmp picks this method up.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == other.scalar
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return v.mapping.Equal(other.mapping)
	default:
		return true
	}
}

// FromAny builds a Value from plain Go data. Map keys are sorted since plain
// maps carry no order; order-sensitive callers should build mappings
// explicitly or decode JSON instead.
func FromAny(data any) Value {
	switch d := data.(type) {
	case Value:
		return d
	case *Mapping:
		return FromMapping(d)
	case map[string]any:
		keys := make([]string, 0, len(d))
		for key := range d {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, key := range keys {
			m.Set(key, FromAny(d[key]))
		}
		return FromMapping(m)
	case []any:
		items := make([]Value, 0, len(d))
		for _, item := range d {
			items = append(items, FromAny(item))
		}
		return Sequence(items...)
	case string, json.Number, bool, nil:
		return Scalar(d)
	case int:
		return Scalar(json.Number(fmt.Sprintf("%d", d)))
	case int64:
		return Scalar(json.Number(fmt.Sprintf("%d", d)))
	case float64:
		raw, _ := json.Marshal(d)
		return Scalar(json.Number(raw))
	default:
		return Scalar(fmt.Sprintf("%v", d))
	}
}

// Mapping is a string-keyed mapping that remembers insertion order.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set stores a value, appending the key on first sight and keeping its
// original position on overwrite.
func (m *Mapping) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value for key and whether it exists.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports key presence.
func (m *Mapping) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Delete removes a key, preserving the relative order of the rest.
func (m *Mapping) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The slice is shared; callers
// must not mutate it.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len reports the entry count.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Equal reports order-sensitive deep equality.
func (m *Mapping) Equal(other *Mapping) bool {
	if m == nil || other == nil {
		return m.Len() == 0 && other.Len() == 0
	}
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, key := range m.keys {
		if other.keys[i] != key {
			return false
		}
		left := m.values[key]
		right := other.values[key]
		if !left.Equal(right) {
			return false
		}
	}
	return true
}
