package table

import (
	"shuul-console/internal/dialog"
	"shuul-console/internal/schema"
)

// Snapshot is the view state a table serves to the console.
type Snapshot struct {
	Items    []schema.Item     `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Records  int               `json:"records"`
	Pages    int               `json:"pages"`
	SortKey  string            `json:"sort_key,omitempty"`
	Sort     string            `json:"sort_order,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
	Loading  bool              `json:"loading"`
	Dialog   *DialogSnapshot   `json:"dialog,omitempty"`
}

// DialogSnapshot is the staged dialog as served to the console.
type DialogSnapshot struct {
	Mode   string         `json:"mode"`
	Draft  schema.Item    `json:"draft,omitempty"`
	Banner *dialog.Banner `json:"banner,omitempty"`
}

// Snapshot captures the current view state.
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	items := make([]schema.Item, len(t.items))
	copy(items, t.items)
	filters := make(map[string]string, len(t.filters))
	for k, v := range t.filters {
		filters[k] = v
	}
	snap := Snapshot{
		Items:    items,
		Page:     t.page,
		PageSize: t.pageSize,
		Records:  t.records,
		Pages:    t.pages,
		SortKey:  t.sortKey,
		Sort:     t.sortOrder.String(),
		Filters:  filters,
		Loading:  t.loading,
	}
	t.mu.Unlock()

	if t.dialog.IsOpen() || t.dialog.Banner() != nil {
		ds := &DialogSnapshot{Mode: t.dialog.Mode().String()}
		if t.dialog.IsOpen() {
			ds.Draft = t.dialog.Draft()
		}
		ds.Banner = t.dialog.Banner()
		snap.Dialog = ds
	}
	return snap
}
