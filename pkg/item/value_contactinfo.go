package item

import "encoding/json"

// EmailValue is one address of an email field, qualified by a kind label
// (work, home, other). Equality covers both the kind and the address.
type EmailValue struct {
	Kind    string
	Address string
}

func (v EmailValue) Data() map[string]interface{} {
	if v.Address == "" {
		return nil
	}
	data := map[string]interface{}{"value": v.Address}
	if v.Kind != "" {
		data["type"] = v.Kind
	}
	return data
}

func (v EmailValue) Equal(other Value) bool {
	o, ok := other.(EmailValue)
	return ok && v.Kind == o.Kind && v.Address == o.Address
}

func decodeEmailValue(raw json.RawMessage) (Value, bool) {
	kind, value, ok := decodeTypedString(raw)
	if !ok {
		return nil, false
	}
	return EmailValue{Kind: kind, Address: value}, true
}

// PhoneValue is one number of a phone field, qualified like EmailValue.
type PhoneValue struct {
	Kind   string
	Number string
}

func (v PhoneValue) Data() map[string]interface{} {
	if v.Number == "" {
		return nil
	}
	data := map[string]interface{}{"value": v.Number}
	if v.Kind != "" {
		data["type"] = v.Kind
	}
	return data
}

func (v PhoneValue) Equal(other Value) bool {
	o, ok := other.(PhoneValue)
	return ok && v.Kind == o.Kind && v.Number == o.Number
}

func decodePhoneValue(raw json.RawMessage) (Value, bool) {
	kind, value, ok := decodeTypedString(raw)
	if !ok {
		return nil, false
	}
	return PhoneValue{Kind: kind, Number: value}, true
}

// decodeTypedString reads the shared `{"type": ..., "value": ...}` shape of
// email and phone values.
func decodeTypedString(raw json.RawMessage) (kind, value string, ok bool) {
	var env struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Value) == 0 {
		return "", "", false
	}
	s, ok := decodeString(env.Value)
	if !ok {
		return "", "", false
	}
	return env.Type, s, true
}
