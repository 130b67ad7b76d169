// Package console holds the per-session view state: one table per managed
// resource, created lazily and evicted together with the session.
package console

import (
	"sync"

	"shuul-console/internal/api"
	"shuul-console/internal/resources"
	"shuul-console/internal/table"
)

// Console is the view state of one signed-in session.
type Console struct {
	mu     sync.Mutex
	client *api.Client
	tables map[string]*table.Table

	translate func(string) string
}

func New(client *api.Client, translate func(string) string) *Console {
	return &Console{
		client:    client,
		tables:    make(map[string]*table.Table),
		translate: translate,
	}
}

// Table returns the table for the named resource, creating it on first use.
func (c *Console) Table(name string) (*table.Table, bool) {
	def, ok := resources.Lookup(name)
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[name]; ok {
		return t, true
	}
	t := table.New(def.Endpoint, def.Fields, c.client, c.client, table.Options{
		Translate: c.translate,
	})
	c.tables[name] = t
	return t, true
}

// SetToken propagates the session token to every live table so debounced
// fetches stay authenticated.
func (c *Console) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tables {
		t.SetToken(token)
	}
}

// Close stops every table timer. Called on session eviction.
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, t := range c.tables {
		t.Close()
		delete(c.tables, name)
	}
}
