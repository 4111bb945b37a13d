package item

import (
	"encoding/json"
	"fmt"
)

// UnsetID is the sentinel for server-assigned numeric ids that have not
// been assigned yet, e.g. on client-constructed fields and items.
const UnsetID int64 = -1

// Field is a typed, named attribute slot on an item: identity, status, an
// ordered value sequence and the server-declared configuration. One generic
// container serves every field type; per-type behavior is resolved through
// the type registry.
type Field struct {
	fieldID    int64
	externalID string
	label      string
	status     Status
	fieldType  Type
	values     []Value
	config     *Configuration
}

// NewField constructs a client-side field shell with an external id and a
// type but no server identity, configuration or values. Shells are used
// when building payloads for items the server has not seen yet.
func NewField(externalID string, t Type) *Field {
	return &Field{
		fieldID:    UnsetID,
		externalID: externalID,
		status:     StatusUndefined,
		fieldType:  t,
	}
}

// FieldID returns the server-assigned id, or UnsetID for client-constructed
// fields.
func (f *Field) FieldID() int64 { return f.fieldID }

// ExternalID returns the stable, human-chosen identifier used for lookup.
func (f *Field) ExternalID() string { return f.externalID }

// Label returns the display label.
func (f *Field) Label() string { return f.label }

// Status returns the field's lifecycle status.
func (f *Field) Status() Status { return f.status }

// Type returns the field's type tag. Unrecognized server types surface as
// TypeUndefined.
func (f *Field) Type() Type { return f.fieldType }

// Configuration returns the server-declared configuration, or nil for
// client-constructed fields.
func (f *Field) Configuration() *Configuration { return f.config }

// Equal reports identity equality: two fields are the same field iff their
// server-assigned ids match. Fields without an id (client-constructed) are
// never equal to anything, including each other.
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return false
	}
	return f.fieldID > 0 && f.fieldID == other.fieldID
}

// Values returns the ordered value sequence. It is never nil-vs-absent
// significant: a field without values returns an empty slice. The returned
// slice is a copy; mutate through AddValue and friends.
func (f *Field) Values() []Value {
	out := make([]Value, len(f.values))
	copy(out, f.values)
	return out
}

// ValueCount returns the number of values currently set.
func (f *Field) ValueCount() int { return len(f.values) }

// ValueAt returns the value at the given position. Out-of-range positions
// return ErrIndexOutOfRange, except on undefined fields, which report a nil
// value instead of failing. That asymmetry is long-standing observed
// behavior and callers depend on it; do not unify.
func (f *Field) ValueAt(index int) (Value, error) {
	if f.fieldType == TypeUndefined {
		return nil, nil
	}
	if index < 0 || index >= len(f.values) {
		return nil, fmt.Errorf("%w: index %d with %d values", ErrIndexOutOfRange, index, len(f.values))
	}
	return f.values[index], nil
}

// AddValue adds a value following the field type's multiplicity rule.
// Multi-valued types append unless an equal value is already present;
// single-valued types replace whatever was set ("add replaces"). Undefined
// fields discard the value.
func (f *Field) AddValue(v Value) {
	if f.fieldType == TypeUndefined || v == nil {
		return
	}
	if !variantFor(f.fieldType).multiValued(f.config) {
		f.values = f.values[:0]
		f.values = append(f.values, v)
		return
	}
	for _, existing := range f.values {
		if existing.Equal(v) {
			return
		}
	}
	f.values = append(f.values, v)
}

// SetValues replaces the value sequence, applying the same per-value rules
// as AddValue.
func (f *Field) SetValues(values ...Value) {
	f.values = f.values[:0]
	for _, v := range values {
		f.AddValue(v)
	}
}

// RemoveValue removes the first value equal to v. Removing a value that is
// not present is a no-op.
func (f *Field) RemoveValue(v Value) {
	if v == nil {
		return
	}
	for i, existing := range f.values {
		if existing.Equal(v) {
			f.values = append(f.values[:i], f.values[i+1:]...)
			return
		}
	}
}

// ClearValues removes all values.
func (f *Field) ClearValues() {
	f.values = f.values[:0]
}

// CreateData returns the field's write-back projections, one entry per
// value that projects to something. A field whose values all project to
// nothing returns nil, which keeps it out of the payload entirely.
func (f *Field) CreateData() []map[string]interface{} {
	var out []map[string]interface{}
	for _, v := range f.values {
		if data := v.Data(); len(data) > 0 {
			out = append(out, data)
		}
	}
	return out
}

// clone returns a field shell sharing identity and configuration but no
// values. Used when seeding a new item from an application template.
func (f *Field) clone() *Field {
	return &Field{
		fieldID:    f.fieldID,
		externalID: f.externalID,
		label:      f.label,
		status:     f.status,
		fieldType:  f.fieldType,
		config:     f.config,
	}
}

// fieldEnvelope is the wire shape of one field in a record.
type fieldEnvelope struct {
	FieldID    *int64            `json:"field_id"`
	ExternalID string            `json:"external_id"`
	Label      string            `json:"label"`
	Status     string            `json:"status"`
	Type       string            `json:"type"`
	Config     json.RawMessage   `json:"config"`
	Values     []json.RawMessage `json:"values"`
}

// UnmarshalJSON decodes a field from a server record. Decoding never fails
// on server data variance: unknown type tags produce an undefined field
// with zero values, and individual values that cannot be read are dropped.
// Only malformed JSON surfaces as an error.
func (f *Field) UnmarshalJSON(data []byte) error {
	var env fieldEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	f.fieldID = UnsetID
	if env.FieldID != nil {
		f.fieldID = *env.FieldID
	}
	f.externalID = env.ExternalID
	f.label = env.Label
	f.status = ParseStatus(env.Status)
	f.fieldType = ParseType(env.Type)
	f.config = decodeConfiguration(f.fieldType, env.Config)
	f.values = nil

	if f.fieldType == TypeUndefined {
		return nil
	}
	decode := variantFor(f.fieldType).decodeValue
	for _, raw := range env.Values {
		if v, ok := decode(raw); ok {
			f.values = append(f.values, v)
		}
	}
	return nil
}
