package item

import "encoding/json"

// Value is one occurrence of a field's content. Each field type has its own
// concrete value shape; all of them project into a write-back payload the
// same way.
type Value interface {
	// Data returns the value's write-back projection: the key-value
	// mapping sent to the server on create/update. Incomplete values
	// (empty text, a reference without a positive id, ...) return nil and
	// are left out of the payload entirely.
	Data() map[string]interface{}

	// Equal reports semantic equality with another value: category values
	// compare by option id, money values by currency+amount, references by
	// the referenced entity. Incidental attributes (cached option colors,
	// profile names) never participate.
	Equal(other Value) bool
}

// valueEnvelope is the common `{"value": ...}` wrapper most field types use
// on the wire. The payload inside varies per type: a string, a number, or a
// nested object.
type valueEnvelope struct {
	Value json.RawMessage `json:"value"`
}

func unwrapValue(raw json.RawMessage) (json.RawMessage, bool) {
	var env valueEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Value) == 0 {
		return nil, false
	}
	return env.Value, true
}

// decodeString accepts a JSON string or number and returns its text form.
// Several types (money amounts, calculation results) arrive as either.
func decodeString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

func decodeInt64(raw json.RawMessage) (int64, bool) {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	// Some endpoints quote numeric ids.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var q int64
		if err := json.Unmarshal([]byte(s), &q); err == nil {
			return q, true
		}
	}
	return 0, false
}
