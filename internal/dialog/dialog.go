package dialog

import (
	"context"
	"sync"
	"time"

	"shuul-console/internal/api"
	"shuul-console/internal/schema"
)

// Mode identifies which operation a dialog is staging. None means no dialog
// is open.
type Mode int

const (
	ModeNone Mode = iota
	ModeCreate
	ModeRead
	ModeUpdate
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeRead:
		return "read"
	case ModeUpdate:
		return "update"
	case ModeDelete:
		return "delete"
	default:
		return "none"
	}
}

// ParseMode maps the wire verb onto a Mode. Unknown verbs map to ModeNone.
func ParseMode(s string) Mode {
	switch s {
	case "create":
		return ModeCreate
	case "read":
		return ModeRead
	case "update":
		return ModeUpdate
	case "delete":
		return ModeDelete
	default:
		return ModeNone
	}
}

// Client is the slice of the API client a dialog needs to confirm its
// operation.
type Client interface {
	Create(ctx context.Context, token, endpoint string, body any) api.Envelope
	Update(ctx context.Context, token, endpoint string, body any) api.Envelope
	Delete(ctx context.Context, token, endpoint string, id any) api.Envelope
	Read(ctx context.Context, token, endpoint string, id any) api.Envelope
}

// Dialog stages a single create, read, update or delete operation against
// one resource. It holds a draft item the caller edits field by field, and
// a transient banner for validation and operation outcomes. The zero value
// is closed.
type Dialog struct {
	mu sync.Mutex

	mode     Mode
	endpoint string
	fields   []schema.Field
	draft    schema.Item
	result   schema.Item

	banner      *Banner
	bannerTimer *time.Timer

	client    Client
	translate func(string) string
}

// BannerTTL is how long an outcome banner stays visible before it
// auto-dismisses.
const BannerTTL = 3 * time.Second

func New(endpoint string, fields []schema.Field, client Client, translate func(string) string) *Dialog {
	if translate == nil {
		translate = func(s string) string { return s }
	}
	return &Dialog{
		endpoint:  endpoint,
		fields:    fields,
		client:    client,
		translate: translate,
	}
}

// Open stages an operation. For create the draft starts from the field
// defaults; for the other modes it starts from a copy of the seed item.
func (d *Dialog) Open(mode Mode, seed schema.Item) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mode = mode
	d.result = nil
	d.clearBannerLocked()

	if mode == ModeCreate {
		d.draft = schema.Item{}
		for _, f := range d.fields {
			if f.Default != nil {
				schema.SetValue(d.draft, f.Path, f.Default)
			}
		}
		return
	}
	d.draft = schema.Clone(seed)
}

// Refresh re-reads the staged item from the backend so a read dialog shows
// current values rather than the possibly stale listed row. Only read mode
// refreshes; an upstream failure shows an error banner and keeps the local
// copy.
func (d *Dialog) Refresh(ctx context.Context, token string) {
	d.mu.Lock()
	if d.mode != ModeRead {
		d.mu.Unlock()
		return
	}
	endpoint := d.endpoint
	id, ok := schema.ItemID(d.draft)
	d.mu.Unlock()
	if !ok {
		return
	}

	envelope := d.client.Read(ctx, token, endpoint, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode != ModeRead {
		return
	}
	if envelope.Status < 200 || envelope.Status >= 300 {
		d.showBannerLocked(envelope.Message, KindError)
		return
	}
	if item, ok := api.Decode[schema.Item](envelope); ok {
		schema.Merge(d.draft, item)
	}
}

// SetExternal merges values chosen outside the dialog form, such as a
// lookup result, into the draft.
func (d *Dialog) SetExternal(values schema.Item) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == ModeNone {
		return
	}
	schema.Merge(d.draft, values)
}

// SetField writes one field of the draft. Writes are ignored in read mode
// and for fields not marked editable.
func (d *Dialog) SetField(key string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == ModeNone || d.mode == ModeRead {
		return
	}
	f, ok := schema.FieldByKey(d.fields, key)
	if !ok || !f.Editable {
		return
	}
	schema.SetValue(d.draft, f.Path, value)
}

// Confirm executes the staged operation. On a validation failure or an
// upstream error the dialog stays open with an error banner; on success the
// result item is recorded, a success banner is shown, and the dialog
// closes.
func (d *Dialog) Confirm(ctx context.Context, token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.mode {
	case ModeNone:
		return false
	case ModeRead:
		d.mode = ModeNone
		return true
	case ModeCreate, ModeUpdate:
		if missing := d.missingRequiredLocked(); missing != "" {
			d.showBannerLocked(d.translate("dialog.required")+": "+missing, KindError)
			return false
		}
	}

	var envelope api.Envelope
	switch d.mode {
	case ModeCreate:
		envelope = d.client.Create(ctx, token, d.endpoint, d.declaredBodyLocked())
	case ModeUpdate:
		envelope = d.client.Update(ctx, token, d.endpoint, d.draft)
	case ModeDelete:
		id, _ := schema.ItemID(d.draft)
		envelope = d.client.Delete(ctx, token, d.endpoint, id)
	}

	if envelope.Status < 200 || envelope.Status >= 300 {
		d.showBannerLocked(envelope.Message, KindError)
		return false
	}

	if item, ok := api.Decode[schema.Item](envelope); ok {
		d.result = item
	} else {
		// Delete responses often carry no body. Fall back to the draft
		// so reconciliation still knows which item was affected.
		d.result = schema.Clone(d.draft)
	}
	d.showBannerLocked(d.translate("dialog.success"), KindSuccess)
	d.mode = ModeNone
	return true
}

// Cancel discards the draft without any network activity.
func (d *Dialog) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode = ModeNone
	d.draft = nil
	d.result = nil
}

// Mode returns the current mode.
func (d *Dialog) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// IsOpen reports whether a dialog is currently staged.
func (d *Dialog) IsOpen() bool {
	return d.Mode() != ModeNone
}

// Draft returns a copy of the staged item.
func (d *Dialog) Draft() schema.Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	return schema.Clone(d.draft)
}

// Result returns the item produced by the last successful Confirm, or nil.
func (d *Dialog) Result() schema.Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// TakeResult returns the last confirm result and clears it.
func (d *Dialog) TakeResult() schema.Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := d.result
	d.result = nil
	return r
}

// Banner returns the currently visible banner, or nil.
func (d *Dialog) Banner() *Banner {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.banner == nil {
		return nil
	}
	b := *d.banner
	return &b
}

// DismissBanner hides the banner ahead of its auto-dismiss.
func (d *Dialog) DismissBanner() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearBannerLocked()
}

// Close releases the banner timer. The dialog must not be used afterwards.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearBannerLocked()
	d.mode = ModeNone
}

func (d *Dialog) missingRequiredLocked() string {
	for _, f := range d.fields {
		if !f.Required {
			continue
		}
		v, ok := schema.Value(d.draft, f.Path)
		if !ok || schema.IsEmpty(v) {
			return f.Label
		}
	}
	return ""
}

// declaredBodyLocked builds the create body from the declared fields only,
// so server-assigned values never leak into a POST.
func (d *Dialog) declaredBodyLocked() schema.Item {
	body := schema.Item{}
	for _, f := range d.fields {
		if v, ok := schema.Value(d.draft, f.Path); ok {
			schema.SetValue(body, f.Path, v)
		}
	}
	return body
}

func (d *Dialog) showBannerLocked(text string, kind Kind) {
	d.clearBannerLocked()
	b := NewBanner(text, kind)
	d.banner = &b
	d.bannerTimer = time.AfterFunc(BannerTTL, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.banner != nil && d.banner.ID == b.ID {
			d.banner = nil
		}
	})
}

func (d *Dialog) clearBannerLocked() {
	if d.bannerTimer != nil {
		d.bannerTimer.Stop()
		d.bannerTimer = nil
	}
	d.banner = nil
}
