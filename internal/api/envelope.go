package api

import (
	"encoding/json"
)

// Pagination is the paging block the Shuul backend attaches to collection
// responses.
type Pagination struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Pages   int    `json:"pages"`
	Records int    `json:"records"`
	Prev    string `json:"prev,omitempty"`
	Next    string `json:"next,omitempty"`
}

// Envelope is the uniform wire shape every Shuul API response satisfies.
// The client trusts it as the sole parsing contract.
type Envelope struct {
	Status     int             `json:"status"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// OK reports the single success check every caller uses: a 2xx status with
// a data payload present.
func (e Envelope) OK() bool {
	return e.Status >= 200 && e.Status < 300 && len(e.Data) > 0
}

// Page returns the pagination block with the defensive defaults applied
// when the server omitted it or left fields zero.
func (e Envelope) Page() Pagination {
	p := Pagination{Page: 1, Limit: 10, Records: 0}
	if e.Pagination == nil {
		return p
	}
	if e.Pagination.Page > 0 {
		p.Page = e.Pagination.Page
	}
	if e.Pagination.Limit > 0 {
		p.Limit = e.Pagination.Limit
	}
	p.Pages = e.Pagination.Pages
	p.Records = e.Pagination.Records
	p.Prev = e.Pagination.Prev
	p.Next = e.Pagination.Next
	return p
}

// Decode unmarshals the envelope payload into T. The bool mirrors OK plus a
// successful decode.
func Decode[T any](e Envelope) (T, bool) {
	var out T
	if !e.OK() {
		return out, false
	}
	if err := json.Unmarshal(e.Data, &out); err != nil {
		return out, false
	}
	return out, true
}
