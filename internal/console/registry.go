package console

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"shuul-console/internal/api"
	"shuul-console/internal/metrics"
)

// Registry maps session tokens to their consoles. Entries expire alongside
// the session lifetime and their table timers are stopped on eviction.
type Registry struct {
	consoles  *ttlcache.Cache[string, *Console]
	client    *api.Client
	translate func(string) string
}

func NewRegistry(client *api.Client, lifetime time.Duration, translate func(string) string) *Registry {
	c := ttlcache.New(
		ttlcache.WithTTL[string, *Console](lifetime),
	)
	c.OnEviction(func(_ context.Context, _ ttlcache.EvictionReason, item *ttlcache.Item[string, *Console]) {
		item.Value().Close()
		metrics.ActiveConsoles.Dec()
	})
	go c.Start()

	return &Registry{consoles: c, client: client, translate: translate}
}

// Get returns the console for the session token, creating one on first use.
// Access refreshes the entry TTL.
func (r *Registry) Get(token string) *Console {
	if item := r.consoles.Get(token); item != nil {
		return item.Value()
	}
	c := New(r.client, r.translate)
	r.consoles.Set(token, c, ttlcache.DefaultTTL)
	metrics.ActiveConsoles.Inc()
	return c
}

// Drop evicts the console for the session token, if any.
func (r *Registry) Drop(token string) {
	r.consoles.Delete(token)
}

// Len returns the number of live consoles.
func (r *Registry) Len() int {
	return r.consoles.Len()
}

// Close stops the registry and every remaining console.
func (r *Registry) Close() {
	r.consoles.Stop()
	r.consoles.DeleteAll()
}
