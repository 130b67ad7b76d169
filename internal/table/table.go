package table

import (
	"context"
	"strings"
	"sync"
	"time"

	"shuul-console/internal/api"
	"shuul-console/internal/dialog"
	"shuul-console/internal/schema"
)

// SortOrder is the tri-state column sort.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAscend
	SortDescend
)

func (s SortOrder) String() string {
	switch s {
	case SortAscend:
		return "ascend"
	case SortDescend:
		return "descend"
	default:
		return ""
	}
}

// ParseSortOrder maps the wire value to a SortOrder. Anything unknown is
// SortNone.
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "ascend", "asc":
		return SortAscend
	case "descend", "desc":
		return SortDescend
	default:
		return SortNone
	}
}

// Fetcher is the slice of the API client a table needs to page through its
// resource.
type Fetcher interface {
	LoadData(ctx context.Context, token, endpoint string, params api.Params) api.Envelope
}

// DefaultSortColumn is the server-side sort used when no column sort is
// active.
const DefaultSortColumn = "created_at"

// FilterDebounce is how long a filter keystroke sits before it triggers a
// fetch.
const FilterDebounce = 500 * time.Millisecond

// Table owns the paged, sorted, filtered view over one backend resource,
// plus the dialog staging mutations against it. All exported methods are
// safe for concurrent use.
type Table struct {
	mu sync.Mutex

	endpoint     string
	fields       []schema.Field
	staticParams api.Params

	items    []schema.Item
	page     int
	pageSize int
	records  int
	pages    int

	sortKey   string
	sortOrder SortOrder
	filters   map[string]string

	loading bool
	loaded  bool

	// fetchSeq makes responses arriving out of order harmless: only the
	// response matching the latest issued sequence may write state.
	fetchSeq uint64

	debouncers map[string]*time.Timer
	debounce   time.Duration

	token   string
	fetcher Fetcher
	dialog  *dialog.Dialog
}

// Options configures a Table beyond its resource definition.
type Options struct {
	StaticParams api.Params
	Translate    func(string) string
	Debounce     time.Duration
}

func New(endpoint string, fields []schema.Field, fetcher Fetcher, client dialog.Client, opts Options) *Table {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = FilterDebounce
	}
	return &Table{
		endpoint:     endpoint,
		fields:       fields,
		staticParams: opts.StaticParams,
		page:         1,
		pageSize:     10,
		filters:      make(map[string]string),
		debouncers:   make(map[string]*time.Timer),
		debounce:     debounce,
		fetcher:      fetcher,
		dialog:       dialog.New(endpoint, fields, client, opts.Translate),
	}
}

// SetToken stores the bearer token used for fetches triggered internally,
// such as debounced filter callbacks.
func (t *Table) SetToken(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

// Dialog exposes the table's dialog controller.
func (t *Table) Dialog() *dialog.Dialog {
	return t.dialog
}

// FilterInput records a filter keystroke and arms the debounce timer. When
// the timer fires the filter is applied and a fetch runs with the stored
// token.
func (t *Table) FilterInput(key, raw string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.debouncers[key]; ok {
		timer.Stop()
	}
	t.debouncers[key] = time.AfterFunc(t.debounce, func() {
		t.mu.Lock()
		delete(t.debouncers, key)
		token := t.token
		t.mu.Unlock()
		if t.ApplyFilter(key, raw) {
			t.Fetch(context.Background(), token)
		}
	})
}

// ApplyFilter cleans and applies one filter value immediately. It reports
// whether the table changed; an unchanged value is a no-op and triggers no
// fetch. A changed value resets to page one and discards the stale rows.
func (t *Table) ApplyFilter(key, raw string) bool {
	clean := api.TranslateWildcards(strings.TrimSpace(raw))

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.filters[key] == clean {
		return false
	}
	if clean == "" {
		delete(t.filters, key)
	} else {
		t.filters[key] = clean
	}
	t.page = 1
	t.items = nil
	t.loading = true
	return true
}

// Change applies a pagination or sort change coming from the view. It
// reports whether anything changed and a fetch is due. A page-size change
// discards the current rows eagerly since their window no longer matches.
func (t *Table) Change(page, pageSize int, sortKey string, order SortOrder) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = t.pageSize
	}

	changed := false
	if pageSize != t.pageSize {
		t.pageSize = pageSize
		t.page = 1
		t.items = nil
		changed = true
	}
	if page != t.page && pageSize == t.pageSize {
		t.page = page
		changed = true
	}
	if sortKey != t.sortKey || order != t.sortOrder {
		t.sortKey = sortKey
		t.sortOrder = order
		changed = true
	}
	if changed {
		t.loading = true
	}
	return changed
}

// Fetch loads the current window from the backend. It is suppressed while a
// dialog is open, and a response is dropped when a newer fetch was issued
// after it.
func (t *Table) Fetch(ctx context.Context, token string) {
	if t.dialog.IsOpen() {
		return
	}

	t.mu.Lock()
	t.fetchSeq++
	seq := t.fetchSeq
	t.loading = true
	params := t.paramsLocked()
	endpoint := t.endpoint
	t.mu.Unlock()

	envelope := t.fetcher.LoadData(ctx, token, endpoint, params)

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.fetchSeq {
		return
	}
	t.loading = false
	t.loaded = true

	items, ok := api.Decode[[]schema.Item](envelope)
	if !ok {
		return
	}
	t.items = items
	p := envelope.Page()
	t.page = p.Page
	t.pageSize = p.Limit
	t.records = p.Records
	t.pages = p.Pages
}

// Loaded reports whether at least one fetch has completed.
func (t *Table) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded
}

func (t *Table) paramsLocked() api.Params {
	params := api.Params{
		{Key: "page", Value: t.page},
		{Key: "limit", Value: t.pageSize},
	}

	sortBy := DefaultSortColumn
	if t.sortOrder != SortNone && t.sortKey != "" {
		if f, ok := schema.FieldByKey(t.fields, t.sortKey); ok {
			sortBy = f.SortColumn()
		}
	}
	params = params.With("sort_by", sortBy)
	if t.sortOrder == SortAscend {
		params = params.With("asc", true)
	}

	for _, f := range t.fields {
		if !f.Filterable() {
			continue
		}
		if v, ok := t.filters[f.Key()]; ok && v != "" {
			params = params.With(f.FilterKey, v)
		}
	}
	return append(params, t.staticParams...)
}

// OpenDialog stages an operation. For every mode but create the seed is the
// currently listed item with the given id; an id with no matching row opens
// nothing. A read dialog then re-reads the item from the backend so it shows
// current values.
func (t *Table) OpenDialog(ctx context.Context, token string, mode dialog.Mode, id any) bool {
	if mode == dialog.ModeNone {
		return false
	}
	if mode == dialog.ModeCreate {
		t.dialog.Open(mode, nil)
		return true
	}

	t.mu.Lock()
	seed := t.findLocked(id)
	t.mu.Unlock()
	if seed == nil {
		return false
	}
	t.dialog.Open(mode, seed)
	if mode == dialog.ModeRead {
		t.dialog.Refresh(ctx, token)
	}
	return true
}

// ConfirmDialog runs the staged operation and, on success, reconciles the
// listed rows with the outcome so the view is coherent before the follow-up
// refetch lands.
func (t *Table) ConfirmDialog(ctx context.Context, token string) bool {
	mode := t.dialog.Mode()
	if !t.dialog.Confirm(ctx, token) {
		return false
	}
	result := t.dialog.TakeResult()
	if result == nil {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	switch mode {
	case dialog.ModeDelete:
		id, ok := schema.ItemID(result)
		if !ok {
			return true
		}
		kept := t.items[:0]
		for _, item := range t.items {
			if !schema.SameID(item, id) {
				kept = append(kept, item)
			}
		}
		t.items = kept
		if t.records > 0 {
			t.records--
		}
	case dialog.ModeUpdate:
		id, ok := schema.ItemID(result)
		if !ok {
			return true
		}
		for _, item := range t.items {
			if schema.SameID(item, id) {
				schema.Merge(item, result)
				break
			}
		}
	case dialog.ModeCreate:
		t.items = append(t.items, result)
		t.records++
	}
	return true
}

// CancelDialog discards the staged operation.
func (t *Table) CancelDialog() {
	t.dialog.Cancel()
}

func (t *Table) findLocked(id any) schema.Item {
	for _, item := range t.items {
		if schema.SameID(item, id) {
			return item
		}
	}
	return nil
}

// Close cancels pending debounce timers and the dialog banner timer.
func (t *Table) Close() {
	t.mu.Lock()
	for key, timer := range t.debouncers {
		timer.Stop()
		delete(t.debouncers, key)
	}
	t.mu.Unlock()
	t.dialog.Close()
}
