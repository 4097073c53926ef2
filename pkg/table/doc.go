// Package table holds the tabular intermediate representation produced by
// rule-set extraction: ordered rows of string fields, grouped into named
// tables. A Set owns every table of one pipeline invocation along with the
// reserved options entry conversion templates read.
package table
