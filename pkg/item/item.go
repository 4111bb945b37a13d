package item

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gridapp/grid-go/pkg/types"
)

// Item is a record in an application: identity, item-level attributes, an
// ordered sequence of schema-bound fields, and a side bucket for values
// addressed at external ids the item does not (yet) recognize.
//
// The bucket is a durable part of the item's state, not a staging area: it
// is never reconciled into the field sequence, and both the fields and the
// bucket contribute to the write-back payload. A full re-decode of the item
// replaces everything, bucket included.
type Item struct {
	itemID     int64
	externalID string
	title      string
	link       string
	app        *Application
	files      []types.File
	tags       []string
	fields     []*Field
	unverified []*unverifiedEntry
}

// unverifiedEntry holds the values set for one unrecognized external id, in
// insertion order. The owning field's type is unknown here, so the entry
// stores generic values and applies no multiplicity rule.
type unverifiedEntry struct {
	externalID string
	values     []Value
}

// NewItem constructs an empty, client-side item.
func NewItem() *Item {
	return &Item{itemID: UnsetID}
}

// NewItemFrom constructs a client-side item seeded with field shells cloned
// from the application's template. The shells share the template's identity
// and configuration but start with no values.
func NewItemFrom(app *Application) *Item {
	it := NewItem()
	it.app = app
	if app != nil {
		for _, f := range app.Fields {
			it.fields = append(it.fields, f.clone())
		}
	}
	return it
}

// NewExternalID generates a client-assigned correlation key for items
// created before the server has assigned an id.
func NewExternalID() string {
	return uuid.NewString()
}

// ItemID returns the server-assigned id, or UnsetID before creation.
func (i *Item) ItemID() int64 { return i.itemID }

// ExternalID returns the client-assigned correlation key, if any.
func (i *Item) ExternalID() string { return i.externalID }

// SetExternalID sets the client-assigned correlation key for a new item.
func (i *Item) SetExternalID(externalID string) { i.externalID = externalID }

// Title returns the item's display title.
func (i *Item) Title() string { return i.title }

// Link returns the item's canonical URL.
func (i *Item) Link() string { return i.link }

// App returns the owning application, when the record embedded it.
func (i *Item) App() *Application { return i.app }

// Files returns the item-level file list.
func (i *Item) Files() []types.File { return i.files }

// Tags returns the item's tags.
func (i *Item) Tags() []string { return i.tags }

// SetTags replaces the item's tags for the next write-back.
func (i *Item) SetTags(tags ...string) { i.tags = tags }

// Equal reports identity equality: same server-assigned item id. Items
// without an id are never equal.
func (i *Item) Equal(other *Item) bool {
	if i == nil || other == nil {
		return false
	}
	return i.itemID > 0 && i.itemID == other.itemID
}

// Fields returns the schema-bound fields in declared order.
func (i *Item) Fields() []*Field {
	out := make([]*Field, len(i.fields))
	copy(out, i.fields)
	return out
}

// Field returns the field with the given external id, or nil. This linear
// scan is the single lookup primitive every accessor builds on.
func (i *Item) Field(externalID string) *Field {
	for _, f := range i.fields {
		if f.externalID == externalID {
			return f
		}
	}
	return nil
}

// AddValue sets a value for the given external id. When a field with that
// external id exists the value is delegated to it (and follows the field
// type's multiplicity rule); otherwise the value lands in the unverified
// bucket. A lookup miss is not an error, it is the bucket's trigger.
func (i *Item) AddValue(externalID string, v Value) {
	if v == nil {
		return
	}
	if f := i.Field(externalID); f != nil {
		f.AddValue(v)
		return
	}
	entry := i.bucketEntry(externalID, true)
	entry.values = append(entry.values, v)
}

// AddValues sets several values for the given external id, in order.
func (i *Item) AddValues(externalID string, values ...Value) {
	for _, v := range values {
		i.AddValue(externalID, v)
	}
}

// RemoveValue removes a value from the field with the given external id,
// or from the unverified bucket when no such field exists. Never fails.
func (i *Item) RemoveValue(externalID string, v Value) {
	if v == nil {
		return
	}
	if f := i.Field(externalID); f != nil {
		f.RemoveValue(v)
		return
	}
	entry := i.bucketEntry(externalID, false)
	if entry == nil {
		return
	}
	for idx, existing := range entry.values {
		if existing.Equal(v) {
			entry.values = append(entry.values[:idx], entry.values[idx+1:]...)
			return
		}
	}
}

// UnverifiedValues returns the bucketed values for an external id, in
// insertion order.
func (i *Item) UnverifiedValues(externalID string) []Value {
	entry := i.bucketEntry(externalID, false)
	if entry == nil {
		return nil
	}
	out := make([]Value, len(entry.values))
	copy(out, entry.values)
	return out
}

func (i *Item) bucketEntry(externalID string, create bool) *unverifiedEntry {
	for _, e := range i.unverified {
		if e.externalID == externalID {
			return e
		}
	}
	if !create {
		return nil
	}
	e := &unverifiedEntry{externalID: externalID}
	i.unverified = append(i.unverified, e)
	return e
}

// CreateData is the write-back payload: the item identity known at
// construction plus every non-empty value projection keyed by external id.
type CreateData struct {
	ExternalID string                              `json:"external_id,omitempty"`
	FileIDs    []int64                             `json:"file_ids,omitempty"`
	Tags       []string                            `json:"tags,omitempty"`
	Fields     map[string][]map[string]interface{} `json:"fields,omitempty"`
}

// CreateData assembles the write-back payload. Fields contribute first, in
// declared order, then the unverified bucket in insertion order; when the
// same external id appears in both, both contribute and the server is left
// to judge the merged list. External ids whose values all project to
// nothing are absent from the payload, not present as empty lists.
func (i *Item) CreateData() *CreateData {
	data := &CreateData{
		ExternalID: i.externalID,
		Tags:       i.tags,
	}
	for _, file := range i.files {
		if file.FileID > 0 {
			data.FileIDs = append(data.FileIDs, file.FileID)
		}
	}

	fields := make(map[string][]map[string]interface{})
	for _, f := range i.fields {
		if projected := f.CreateData(); len(projected) > 0 {
			fields[f.externalID] = append(fields[f.externalID], projected...)
		}
	}
	for _, entry := range i.unverified {
		for _, v := range entry.values {
			if d := v.Data(); len(d) > 0 {
				fields[entry.externalID] = append(fields[entry.externalID], d)
			}
		}
	}
	if len(fields) > 0 {
		data.Fields = fields
	}
	return data
}

// itemEnvelope is the wire shape of a full item record.
type itemEnvelope struct {
	ItemID     *int64          `json:"item_id"`
	ExternalID string          `json:"external_id"`
	Title      string          `json:"title"`
	Link       string          `json:"link"`
	App        *Application    `json:"app"`
	Files      []types.File    `json:"files"`
	Tags       []string        `json:"tags"`
	Fields     []*Field        `json:"fields"`
	Rights     json.RawMessage `json:"rights"` // ignored, kept for forward compatibility
}

// UnmarshalJSON decodes a full item record, replacing all prior state,
// unverified bucket included. Field decoding inherits the registry's
// leniency; only malformed JSON fails.
func (i *Item) UnmarshalJSON(data []byte) error {
	var env itemEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	i.itemID = UnsetID
	if env.ItemID != nil {
		i.itemID = *env.ItemID
	}
	i.externalID = env.ExternalID
	i.title = env.Title
	i.link = env.Link
	i.app = env.App
	i.files = env.Files
	i.tags = env.Tags
	i.fields = env.Fields
	i.unverified = nil
	return nil
}
