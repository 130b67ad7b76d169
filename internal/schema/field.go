package schema

import (
	"strings"
)

// FieldType is the closed set of value kinds a field can declare. Keeping
// this a real enum (instead of an open string) means every renderer and
// validator dispatch is exhaustive.
type FieldType int

const (
	TypeBoolean FieldType = iota
	TypeNumber
	TypeDate
	TypeString
	TypeSelect
)

func (t FieldType) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeDate:
		return "date"
	case TypeString:
		return "string"
	case TypeSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Option is one selectable choice for a TypeSelect field.
type Option struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// Field describes one column of a resource table and one input of its CRUD
// dialog. Field lists are authored statically per resource and never change
// at runtime.
type Field struct {
	// Path addresses the value inside a record as an explicit segment
	// list, so keys containing a dot are never ambiguous.
	Path      []string
	Label     string
	Type      FieldType
	Default   any
	Editable  bool
	Visible   bool
	Required  bool
	FilterKey string
	SortKey   string
	Width     int
	Fixed     string
	Options   []Option

	// Render and Sorter override the per-type defaults when set.
	Render func(value any) string
	Sorter func(a, b Item) int
}

// Key is the canonical identifier of the field, the joined path.
func (f Field) Key() string {
	return strings.Join(f.Path, ".")
}

// Filterable reports whether the column carries a filter input. Only fields
// that name a server-side filter parameter are filterable.
func (f Field) Filterable() bool {
	return f.FilterKey != ""
}

// Sortable reports whether the column offers sorting. Boolean columns do
// not.
func (f Field) Sortable() bool {
	return f.Type != TypeBoolean
}

// SortColumn is the server-side sort key, defaulting to the field key.
func (f Field) SortColumn() string {
	if f.SortKey != "" {
		return f.SortKey
	}
	return f.Key()
}

// Visible fields make up the columns and form inputs; hidden ones are
// carried through drafts untouched.
func VisibleFields(fields []Field) []Field {
	visible := make([]Field, 0, len(fields))
	for _, field := range fields {
		if field.Visible {
			visible = append(visible, field)
		}
	}
	return visible
}

// FieldByKey finds a field by its joined path key.
func FieldByKey(fields []Field, key string) (Field, bool) {
	for _, field := range fields {
		if field.Key() == key {
			return field, true
		}
	}
	return Field{}, false
}
