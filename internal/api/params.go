package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Param is a single query parameter. Params preserve insertion order so the
// request URL reads the way the handler composed it.
type Param struct {
	Key   string
	Value any
}

type Params []Param

// With appends a parameter and returns the extended slice.
func (p Params) With(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// Encode renders the parameters as a query string. Slice values repeat the
// key once per element. Nil and empty-string values are skipped.
func (p Params) Encode() string {
	var b strings.Builder
	for _, param := range p {
		if param.Value == nil {
			continue
		}
		rv := reflect.ValueOf(param.Value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				appendPair(&b, param.Key, rv.Index(i).Interface())
			}
			continue
		}
		appendPair(&b, param.Key, param.Value)
	}
	return b.String()
}

func appendPair(b *strings.Builder, key string, value any) {
	s := fmt.Sprint(value)
	if s == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(url.QueryEscape(key))
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(s))
}

// TranslateWildcards rewrites user-facing "*" wildcards into the SQL "%"
// form the backend filters expect.
func TranslateWildcards(s string) string {
	return strings.ReplaceAll(s, "*", "%")
}
