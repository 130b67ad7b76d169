package dialog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuul-console/internal/api"
	"shuul-console/internal/schema"
)

type fakeClient struct {
	verb     string
	endpoint string
	body     any
	id       any
	reply    api.Envelope
}

func okEnvelope(item schema.Item) api.Envelope {
	raw, _ := json.Marshal(item)
	return api.Envelope{Status: 200, Data: raw}
}

func (f *fakeClient) Create(_ context.Context, _, endpoint string, body any) api.Envelope {
	f.verb, f.endpoint, f.body = "create", endpoint, body
	return f.reply
}

func (f *fakeClient) Update(_ context.Context, _, endpoint string, body any) api.Envelope {
	f.verb, f.endpoint, f.body = "update", endpoint, body
	return f.reply
}

func (f *fakeClient) Delete(_ context.Context, _, endpoint string, id any) api.Envelope {
	f.verb, f.endpoint, f.id = "delete", endpoint, id
	return f.reply
}

func (f *fakeClient) Read(_ context.Context, _, endpoint string, id any) api.Envelope {
	f.verb, f.endpoint, f.id = "read", endpoint, id
	return f.reply
}

var testFields = []schema.Field{
	{Path: []string{"id"}, Type: schema.TypeNumber, Visible: true},
	{Path: []string{"fqdn"}, Label: "FQDN", Type: schema.TypeString, Editable: true, Visible: true, Required: true},
	{Path: []string{"weight"}, Label: "Weight", Type: schema.TypeNumber, Default: 100, Editable: true, Visible: true},
	{Path: []string{"note"}, Label: "Note", Type: schema.TypeString, Visible: true},
}

func TestOpenCreateSeedsDefaults(t *testing.T) {
	d := New("rules", testFields, &fakeClient{}, nil)
	d.Open(ModeCreate, nil)

	draft := d.Draft()
	assert.Equal(t, 100, draft["weight"])
	_, hasFQDN := draft["fqdn"]
	assert.False(t, hasFQDN)
}

func TestOpenEditClonesSeed(t *testing.T) {
	d := New("rules", testFields, &fakeClient{}, nil)
	seed := schema.Item{"id": 1, "fqdn": "a.example"}
	d.Open(ModeUpdate, seed)

	d.SetField("fqdn", "b.example")
	assert.Equal(t, "a.example", seed["fqdn"])
	assert.Equal(t, "b.example", d.Draft()["fqdn"])
}

func TestSetFieldIgnoredInReadModeAndNonEditable(t *testing.T) {
	d := New("rules", testFields, &fakeClient{}, nil)

	d.Open(ModeRead, schema.Item{"id": 1, "fqdn": "a.example"})
	d.SetField("fqdn", "changed")
	assert.Equal(t, "a.example", d.Draft()["fqdn"])

	d.Open(ModeUpdate, schema.Item{"id": 1, "note": "keep"})
	d.SetField("note", "changed")
	assert.Equal(t, "keep", d.Draft()["note"])
}

func TestConfirmBlockedByRequiredField(t *testing.T) {
	client := &fakeClient{}
	d := New("rules", testFields, client, nil)
	d.Open(ModeCreate, nil)

	ok := d.Confirm(context.Background(), "t")
	assert.False(t, ok)
	assert.True(t, d.IsOpen())
	assert.Empty(t, client.verb, "no network call expected")

	banner := d.Banner()
	require.NotNil(t, banner)
	assert.Equal(t, KindError, banner.Kind)
	assert.Contains(t, banner.Text, "FQDN")
}

func TestConfirmCreateSendsDeclaredFieldsOnly(t *testing.T) {
	client := &fakeClient{reply: okEnvelope(schema.Item{"id": 5, "fqdn": "a.example"})}
	d := New("rules", testFields, client, nil)
	d.Open(ModeCreate, nil)
	d.SetField("fqdn", "a.example")
	d.SetExternal(schema.Item{"stray": "value"})

	ok := d.Confirm(context.Background(), "t")
	require.True(t, ok)
	assert.Equal(t, "create", client.verb)
	assert.Equal(t, "rules", client.endpoint)

	body, isItem := client.body.(schema.Item)
	require.True(t, isItem)
	assert.Equal(t, "a.example", body["fqdn"])
	_, hasStray := body["stray"]
	assert.False(t, hasStray, "values outside the declared fields stay out of the create body")

	assert.False(t, d.IsOpen())
	result := d.Result()
	require.NotNil(t, result)
	assert.EqualValues(t, 5, result["id"])

	banner := d.Banner()
	require.NotNil(t, banner)
	assert.Equal(t, KindSuccess, banner.Kind)
}

func TestConfirmUpdateSendsFullDraft(t *testing.T) {
	client := &fakeClient{reply: okEnvelope(schema.Item{"id": 1, "fqdn": "b.example"})}
	d := New("rules", testFields, client, nil)
	d.Open(ModeUpdate, schema.Item{"id": 1, "fqdn": "a.example", "server_field": "kept"})
	d.SetField("fqdn", "b.example")

	require.True(t, d.Confirm(context.Background(), "t"))
	assert.Equal(t, "update", client.verb)

	body := client.body.(schema.Item)
	assert.EqualValues(t, 1, body["id"], "update carries the id")
	assert.Equal(t, "b.example", body["fqdn"])
	assert.Equal(t, "kept", body["server_field"], "update sends the whole draft")
}

func TestConfirmDeleteSendsID(t *testing.T) {
	client := &fakeClient{reply: api.Envelope{Status: 200}}
	d := New("rules", testFields, client, nil)
	d.Open(ModeDelete, schema.Item{"id": 9, "fqdn": "a.example"})

	require.True(t, d.Confirm(context.Background(), "t"))
	assert.Equal(t, "delete", client.verb)
	assert.EqualValues(t, 9, client.id)

	// no body in the reply; the draft stands in for reconciliation
	result := d.Result()
	require.NotNil(t, result)
	assert.EqualValues(t, 9, result["id"])
}

func TestConfirmFailureKeepsDialogOpen(t *testing.T) {
	client := &fakeClient{reply: api.Envelope{Status: 409, Message: "duplicate rule"}}
	d := New("rules", testFields, client, nil)
	d.Open(ModeUpdate, schema.Item{"id": 1, "fqdn": "a.example"})

	ok := d.Confirm(context.Background(), "t")
	assert.False(t, ok)
	assert.True(t, d.IsOpen())

	banner := d.Banner()
	require.NotNil(t, banner)
	assert.Equal(t, KindError, banner.Kind)
	assert.Equal(t, "duplicate rule", banner.Text)
}

func TestRefreshMergesBackendValues(t *testing.T) {
	client := &fakeClient{reply: okEnvelope(schema.Item{"id": 1, "note": "current"})}
	d := New("rules", testFields, client, nil)
	d.Open(ModeRead, schema.Item{"id": 1, "fqdn": "a.example", "note": "stale"})

	d.Refresh(context.Background(), "t")

	assert.Equal(t, "read", client.verb)
	assert.EqualValues(t, 1, client.id)
	draft := d.Draft()
	assert.Equal(t, "current", draft["note"])
	assert.Equal(t, "a.example", draft["fqdn"], "merge is shallow, untouched fields survive")
}

func TestRefreshFailureKeepsLocalCopy(t *testing.T) {
	client := &fakeClient{reply: api.Envelope{Status: 502, Message: "backend down"}}
	d := New("rules", testFields, client, nil)
	d.Open(ModeRead, schema.Item{"id": 1, "note": "local"})

	d.Refresh(context.Background(), "t")

	assert.Equal(t, "local", d.Draft()["note"])
	banner := d.Banner()
	require.NotNil(t, banner)
	assert.Equal(t, KindError, banner.Kind)
	assert.Equal(t, "backend down", banner.Text)
}

func TestRefreshIgnoredOutsideReadMode(t *testing.T) {
	client := &fakeClient{reply: okEnvelope(schema.Item{"id": 1, "fqdn": "remote"})}
	d := New("rules", testFields, client, nil)
	d.Open(ModeUpdate, schema.Item{"id": 1, "fqdn": "a.example"})

	d.Refresh(context.Background(), "t")

	assert.Empty(t, client.verb)
	assert.Equal(t, "a.example", d.Draft()["fqdn"])
}

func TestConfirmReadClosesWithoutNetwork(t *testing.T) {
	client := &fakeClient{}
	d := New("rules", testFields, client, nil)
	d.Open(ModeRead, schema.Item{"id": 1})

	assert.True(t, d.Confirm(context.Background(), "t"))
	assert.Empty(t, client.verb)
	assert.False(t, d.IsOpen())
}

func TestCancelDiscardsDraft(t *testing.T) {
	client := &fakeClient{}
	d := New("rules", testFields, client, nil)
	d.Open(ModeUpdate, schema.Item{"id": 1})

	d.Cancel()
	assert.False(t, d.IsOpen())
	assert.Nil(t, d.Draft())
	assert.Empty(t, client.verb)
}

func TestDismissBanner(t *testing.T) {
	d := New("rules", testFields, &fakeClient{}, nil)
	d.Open(ModeCreate, nil)
	d.Confirm(context.Background(), "t")
	require.NotNil(t, d.Banner())

	d.DismissBanner()
	assert.Nil(t, d.Banner())
}

func TestTranslatorShapesBannerText(t *testing.T) {
	translate := func(key string) string {
		if key == "dialog.required" {
			return "Falta un campo obligatorio"
		}
		return key
	}
	d := New("rules", testFields, &fakeClient{}, translate)
	d.Open(ModeCreate, nil)
	d.Confirm(context.Background(), "t")

	banner := d.Banner()
	require.NotNil(t, banner)
	assert.Contains(t, banner.Text, "Falta un campo obligatorio")
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeCreate, ParseMode("create"))
	assert.Equal(t, ModeRead, ParseMode("read"))
	assert.Equal(t, ModeUpdate, ParseMode("update"))
	assert.Equal(t, ModeDelete, ParseMode("delete"))
	assert.Equal(t, ModeNone, ParseMode("bogus"))
}
