package item

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemAddValueDelegatesToField(t *testing.T) {
	it := decodeSampleItem(t)

	it.AddValue("title", TextValue{Text: "ACME renewal 2024"})

	f := it.Field("title")
	require.Equal(t, 1, f.ValueCount(), "text add replaces")
	v, err := f.ValueAt(0)
	require.NoError(t, err)
	assert.Equal(t, TextValue{Text: "ACME renewal 2024"}, v)
	assert.Nil(t, it.UnverifiedValues("title"), "known external ids never hit the bucket")
}

func TestItemUnverifiedBucketFallback(t *testing.T) {
	it := decodeSampleItem(t)
	require.Nil(t, it.Field("custom_x"))

	it.AddValue("custom_x", TextValue{Text: "side channel"})
	it.AddValue("custom_x", TextValue{Text: "second"})

	values := it.UnverifiedValues("custom_x")
	require.Len(t, values, 2, "bucket appends; the field's multiplicity rule is unknown and deferred")

	data := it.CreateData()
	require.Contains(t, data.Fields, "custom_x")
	assert.Equal(t, []map[string]interface{}{
		{"value": "side channel"},
		{"value": "second"},
	}, data.Fields["custom_x"])
}

func TestItemBucketIsNeverReconciledIntoFields(t *testing.T) {
	it := decodeSampleItem(t)
	it.AddValue("custom_x", TextValue{Text: "early"})

	// A later partial install of a field with the same external id does
	// not absorb the bucket entry; both contribute to the payload.
	f := &Field{}
	require.NoError(t, json.Unmarshal([]byte(
		`{"field_id": 50, "external_id": "custom_x", "type": "text", "values": [{"value": "verified"}]}`), f))
	it.fields = append(it.fields, f)

	it.AddValue("custom_x", TextValue{Text: "targets the field now"})
	require.Equal(t, 1, f.ValueCount(), "subsequent adds go to the installed field")

	data := it.CreateData()
	require.Len(t, data.Fields["custom_x"], 2)
	assert.Equal(t, map[string]interface{}{"value": "targets the field now"}, data.Fields["custom_x"][0], "field entries come first")
	assert.Equal(t, map[string]interface{}{"value": "early"}, data.Fields["custom_x"][1], "stale bucket entries still contribute")
}

func TestItemRemoveValue(t *testing.T) {
	it := decodeSampleItem(t)

	it.RemoveValue("status", NewCategoryValue(2))
	assert.Equal(t, 0, it.Field("status").ValueCount())

	it.AddValue("custom_x", TextValue{Text: "a"})
	it.AddValue("custom_x", TextValue{Text: "b"})
	it.RemoveValue("custom_x", TextValue{Text: "a"})
	values := it.UnverifiedValues("custom_x")
	require.Len(t, values, 1)
	assert.True(t, values[0].Equal(TextValue{Text: "b"}))

	// Misses are silent everywhere.
	it.RemoveValue("custom_x", TextValue{Text: "gone"})
	it.RemoveValue("never_seen", TextValue{Text: "whatever"})
}

func TestItemCreateData(t *testing.T) {
	it := decodeSampleItem(t)
	data := it.CreateData()

	assert.Equal(t, "deal-17", data.ExternalID)
	assert.Equal(t, []int64{555}, data.FileIDs)
	assert.Equal(t, []string{"q3", "renewal"}, data.Tags)

	require.Contains(t, data.Fields, "title")
	assert.Equal(t, []map[string]interface{}{{"value": "ACME renewal"}}, data.Fields["title"])
	require.Contains(t, data.Fields, "status")
	assert.Equal(t, []map[string]interface{}{{"value": int64(2)}}, data.Fields["status"])
	require.Contains(t, data.Fields, "budget")
	assert.Equal(t, []map[string]interface{}{{"currency": "EUR", "value": "125000.00"}}, data.Fields["budget"])
	require.Contains(t, data.Fields, "owner")
	assert.Equal(t, []map[string]interface{}{{"value": int64(88)}}, data.Fields["owner"])

	assert.NotContains(t, data.Fields, "hologram", "undefined fields project nothing")
}

func TestItemCreateDataOmitsEmptyFields(t *testing.T) {
	it := NewItem()
	data := it.CreateData()
	assert.Nil(t, data.Fields)
	assert.Empty(t, data.ExternalID)

	// A field holding only non-projecting values stays out entirely.
	it = NewItemFrom(&Application{Fields: []*Field{NewField("note", TypeText)}})
	it.AddValue("note", TextValue{Text: ""})
	assert.Nil(t, it.CreateData().Fields)
}

func TestItemCreateDataMarshalsCleanly(t *testing.T) {
	it := NewItem()
	it.SetExternalID("fresh-1")
	it.SetTags("alpha")
	it.AddValue("custom", TextValue{Text: "x"})

	raw, err := json.Marshal(it.CreateData())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"external_id": "fresh-1",
		"tags": ["alpha"],
		"fields": {"custom": [{"value": "x"}]}
	}`, string(raw))
}

func TestNewItemFromTemplate(t *testing.T) {
	app := &Application{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"app_id": 99,
		"config": {"name": "Deals", "item_name": "Deal"},
		"fields": [
			{"field_id": 1, "external_id": "title", "type": "text", "label": "Title",
			 "config": {"label": "Title"}, "values": [{"value": "template junk"}]},
			{"field_id": 2, "external_id": "status", "type": "category",
			 "config": {"settings": {"multiple": true, "options": [{"id": 1, "text": "Open"}]}}}
		]
	}`), app))

	it := NewItemFrom(app)
	assert.Equal(t, UnsetID, it.ItemID())
	require.Len(t, it.Fields(), 2)

	title := it.Field("title")
	require.NotNil(t, title)
	assert.Equal(t, int64(1), title.FieldID(), "shells keep identity")
	assert.Equal(t, 0, title.ValueCount(), "shells never keep values")
	require.NotNil(t, title.Configuration(), "shells keep configuration")

	// The clone is detached from the template.
	it.AddValue("title", TextValue{Text: "mine"})
	assert.Equal(t, 1, app.Fields[0].ValueCount(), "template still holds its own values")
	assert.Equal(t, 1, it.Field("title").ValueCount())
}

func TestItemIdentityEquality(t *testing.T) {
	a := decodeSampleItem(t)
	b := decodeSampleItem(t)
	assert.True(t, a.Equal(b))

	x := NewItem()
	y := NewItem()
	assert.False(t, x.Equal(y))
	assert.False(t, x.Equal(nil))
}

func TestNewExternalID(t *testing.T) {
	a := NewExternalID()
	b := NewExternalID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestDecodeReplacesAllState(t *testing.T) {
	it := decodeSampleItem(t)
	it.AddValue("custom_x", TextValue{Text: "stale"})

	require.NoError(t, json.Unmarshal([]byte(sampleRecord), it))
	assert.Nil(t, it.UnverifiedValues("custom_x"), "a full re-decode is a wholesale replace")
}
