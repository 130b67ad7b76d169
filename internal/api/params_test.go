package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsEncodePreservesOrder(t *testing.T) {
	params := Params{
		{Key: "page", Value: 2},
		{Key: "limit", Value: 10},
		{Key: "sort_by", Value: "created_at"},
		{Key: "fqdn", Value: "example.%"},
	}

	assert.Equal(t, "page=2&limit=10&sort_by=created_at&fqdn=example.%25", params.Encode())
}

func TestParamsEncodeRepeatsSliceValues(t *testing.T) {
	params := Params{
		{Key: "id", Value: []int{1, 2, 3}},
		{Key: "asc", Value: true},
	}

	assert.Equal(t, "id=1&id=2&id=3&asc=true", params.Encode())
}

func TestParamsEncodeSkipsEmptyValues(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "nil value",
			params: Params{{Key: "a", Value: nil}, {Key: "b", Value: "x"}},
			want:   "b=x",
		},
		{
			name:   "empty string",
			params: Params{{Key: "a", Value: ""}, {Key: "b", Value: "x"}},
			want:   "b=x",
		},
		{
			name:   "all empty",
			params: Params{{Key: "a", Value: nil}},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
		})
	}
}

func TestParamsWith(t *testing.T) {
	params := Params{}.With("page", 1).With("limit", 25)
	assert.Equal(t, "page=1&limit=25", params.Encode())
}

func TestTranslateWildcards(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ab*cd", "ab%cd"},
		{"*", "%"},
		{"**tail", "%%tail"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TranslateWildcards(tt.in))
	}
}
