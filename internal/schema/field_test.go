package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldKeyJoinsPath(t *testing.T) {
	f := Field{Path: []string{"geo", "country", "code"}}
	assert.Equal(t, "geo.country.code", f.Key())
}

func TestFieldFilterable(t *testing.T) {
	assert.True(t, Field{Path: []string{"fqdn"}, FilterKey: "fqdn"}.Filterable())
	assert.False(t, Field{Path: []string{"active"}}.Filterable())
}

func TestFieldSortable(t *testing.T) {
	assert.False(t, Field{Type: TypeBoolean}.Sortable())
	assert.True(t, Field{Type: TypeString}.Sortable())
	assert.True(t, Field{Type: TypeNumber}.Sortable())
}

func TestFieldSortColumn(t *testing.T) {
	assert.Equal(t, "fqdn", Field{Path: []string{"fqdn"}}.SortColumn())
	assert.Equal(t, "domain", Field{Path: []string{"fqdn"}, SortKey: "domain"}.SortColumn())
}

func TestFieldByKey(t *testing.T) {
	fields := []Field{
		{Path: []string{"id"}},
		{Path: []string{"geo", "code"}, Label: "Code"},
	}

	f, ok := FieldByKey(fields, "geo.code")
	assert.True(t, ok)
	assert.Equal(t, "Code", f.Label)

	_, ok = FieldByKey(fields, "missing")
	assert.False(t, ok)
}

func TestVisibleFields(t *testing.T) {
	fields := []Field{
		{Path: []string{"id"}, Visible: true},
		{Path: []string{"secret"}},
		{Path: []string{"fqdn"}, Visible: true},
	}

	visible := VisibleFields(fields)
	assert.Len(t, visible, 2)
	assert.Equal(t, "id", visible[0].Key())
	assert.Equal(t, "fqdn", visible[1].Key())
}
