// Package models defines the data structures used throughout the application
package models

import (
	"fmt"
	"strconv"
	"time"
)

// ColumnType represents the detected data type for a group column
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeNumber
	TypeDate
)

// String returns the string representation of ColumnType
func (ct ColumnType) String() string {
	switch ct {
	case TypeNumber:
		return "NUMBER"
	case TypeDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

// SQLType returns the SQLite type string for the column type
func (ct ColumnType) SQLType() string {
	switch ct {
	case TypeNumber:
		return "REAL"
	case TypeDate:
		return "DATETIME"
	default:
		return "TEXT"
	}
}

// DateLayout is the canonical on-disk format for the timestamp column.
const DateLayout = "2006-01-02"

// dateLayouts lists all accepted timestamp formats. The canonical layout is
// what the tool writes; the others keep hand-edited files loadable.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses a timestamp cell in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a valid date (expected %s, %s or RFC3339)", DateLayout, "2006-01-02 15:04:05")
}

// Column describes one column of a group: its header name and inferred type.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the ordered column list of a group. The first column is always
// the timestamp column. An empty schema means the group has never been
// written and its columns are still undefined.
type Schema []Column

// Index returns the position of the named column, or -1 if absent.
func (s Schema) Index(name string) int {
	for i, col := range s {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the header row for the schema.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = col.Name
	}
	return names
}

// Value is a single CSV cell. Raw holds the cell text exactly as stored on
// disk and is authoritative for re-serialization; Num and Date carry the
// parsed form for the column's type. An empty Raw is an absent value.
type Value struct {
	Raw  string
	Type ColumnType
	Num  float64
	Date time.Time
}

// ParseValue coerces a raw cell to the given column type. Empty cells are
// valid for every type.
func ParseValue(raw string, ct ColumnType) (Value, error) {
	v := Value{Raw: raw, Type: ct}
	if raw == "" {
		return v, nil
	}

	switch ct {
	case TypeNumber:
		num, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not a number")
		}
		v.Num = num
	case TypeDate:
		date, err := ParseDate(raw)
		if err != nil {
			return Value{}, err
		}
		v.Date = date
	}

	return v, nil
}

// Empty reports whether the cell holds no value.
func (v Value) Empty() bool {
	return v.Raw == ""
}

// String returns the on-disk representation of the cell.
func (v Value) String() string {
	return v.Raw
}

// Row is one logged observation: an ordered list of cells, one per schema
// column.
type Row []Value

// Get returns the cell for the named column.
func (r Row) Get(s Schema, name string) (Value, bool) {
	idx := s.Index(name)
	if idx < 0 || idx >= len(r) {
		return Value{}, false
	}
	return r[idx], true
}

// Strings returns the row as raw CSV fields.
func (r Row) Strings() []string {
	fields := make([]string, len(r))
	for i, v := range r {
		fields[i] = v.Raw
	}
	return fields
}
