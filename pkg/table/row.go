package table

import (
	"github.com/goliatone/go-confmig/pkg/document"
)

// Row is a record of string fields that remembers field insertion order.
// Every field is present as a string; empty string means "no value".
type Row struct {
	fields []string
	values map[string]string
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// RowOf builds a row from alternating field/value pairs, preserving pair
// order. Intended for tests and fixtures.
func RowOf(pairs ...string) *Row {
	row := NewRow()
	for i := 0; i+1 < len(pairs); i += 2 {
		row.Set(pairs[i], pairs[i+1])
	}
	return row
}

// Set stores a field value. New fields append to the order; overwriting an
// existing field keeps its original position.
func (r *Row) Set(field, value string) {
	if _, exists := r.values[field]; !exists {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
}

// Get returns the field value, empty string when absent.
func (r *Row) Get(field string) string {
	return r.values[field]
}

// Has reports whether the field exists, even when empty.
func (r *Row) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Fields returns field names in insertion order. The slice is shared;
// callers must not mutate it.
func (r *Row) Fields() []string { return r.fields }

// Len reports the field count.
func (r *Row) Len() int { return len(r.fields) }

// Clone returns an independent copy of the row.
func (r *Row) Clone() *Row {
	out := &Row{
		fields: append([]string(nil), r.fields...),
		values: make(map[string]string, len(r.values)),
	}
	for field, value := range r.values {
		out.values[field] = value
	}
	return out
}

// Value converts the row into an ordered document mapping of string scalars.
func (r *Row) Value() document.Value {
	m := document.NewMapping()
	for _, field := range r.fields {
		m.Set(field, document.String(r.values[field]))
	}
	return document.FromMapping(m)
}

// Equal reports field-order-sensitive equality. go-cmp picks this up.
func (r *Row) Equal(other *Row) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.fields) != len(other.fields) {
		return false
	}
	for i, field := range r.fields {
		if other.fields[i] != field || r.values[field] != other.values[field] {
			return false
		}
	}
	return true
}

// Table is an ordered sequence of rows sharing a nominal schema. The schema
// is not enforced.
type Table []*Row

// Value converts the table into a document sequence of ordered mappings.
func (t Table) Value() document.Value {
	items := make([]document.Value, 0, len(t))
	for _, row := range t {
		items = append(items, row.Value())
	}
	return document.Sequence(items...)
}

// RowsFromValue converts a document sequence of mappings back into a Table.
// The second result is false when the value is not tabular, which happens
// when a reshape template replaced a table with a non-row structure.
func RowsFromValue(v document.Value) (Table, bool) {
	if v.Kind() != document.KindSequence {
		return nil, false
	}
	out := make(Table, 0, v.Len())
	for _, item := range v.Items() {
		if item.Kind() != document.KindMapping {
			return nil, false
		}
		row := NewRow()
		for _, field := range item.Mapping().Keys() {
			entry, _ := item.Mapping().Get(field)
			if entry.Kind() != document.KindScalar {
				return nil, false
			}
			row.Set(field, entry.Text())
		}
		out = append(out, row)
	}
	return out, true
}
