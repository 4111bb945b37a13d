package item

import "encoding/json"

// TextValue is the single value of a text field. An empty string is a legal
// value but projects to nothing.
type TextValue struct {
	Text string
}

func (v TextValue) Data() map[string]interface{} {
	if v.Text == "" {
		return nil
	}
	return map[string]interface{}{"value": v.Text}
}

func (v TextValue) Equal(other Value) bool {
	o, ok := other.(TextValue)
	return ok && v.Text == o.Text
}

func decodeTextValue(raw json.RawMessage) (Value, bool) {
	inner, ok := unwrapValue(raw)
	if !ok {
		return nil, false
	}
	s, ok := decodeString(inner)
	if !ok {
		return nil, false
	}
	return TextValue{Text: s}, true
}

// ProgressValue is a completion percentage between 0 and 100.
type ProgressValue struct {
	Percent int
}

func (v ProgressValue) Data() map[string]interface{} {
	return map[string]interface{}{"value": v.Percent}
}

func (v ProgressValue) Equal(other Value) bool {
	o, ok := other.(ProgressValue)
	return ok && v.Percent == o.Percent
}

func decodeProgressValue(raw json.RawMessage) (Value, bool) {
	inner, ok := unwrapValue(raw)
	if !ok {
		return nil, false
	}
	n, ok := decodeInt64(inner)
	if !ok {
		return nil, false
	}
	return ProgressValue{Percent: int(n)}, true
}

// DurationValue is a signed span counted in seconds. The field's
// configuration decides which sub-units (days, hours, ...) a client should
// offer, but the wire value is always seconds.
type DurationValue struct {
	Seconds int64
}

func (v DurationValue) Data() map[string]interface{} {
	return map[string]interface{}{"value": v.Seconds}
}

func (v DurationValue) Equal(other Value) bool {
	o, ok := other.(DurationValue)
	return ok && v.Seconds == o.Seconds
}

func decodeDurationValue(raw json.RawMessage) (Value, bool) {
	inner, ok := unwrapValue(raw)
	if !ok {
		return nil, false
	}
	n, ok := decodeInt64(inner)
	if !ok {
		return nil, false
	}
	return DurationValue{Seconds: n}, true
}

// CalculationValue is the server-computed result of a calculation field.
// It is read-only: the projection is always nil, so calculation fields
// never appear in a write-back payload.
type CalculationValue struct {
	Result string
}

func (v CalculationValue) Data() map[string]interface{} {
	return nil
}

func (v CalculationValue) Equal(other Value) bool {
	o, ok := other.(CalculationValue)
	return ok && v.Result == o.Result
}

func decodeCalculationValue(raw json.RawMessage) (Value, bool) {
	inner, ok := unwrapValue(raw)
	if !ok {
		return nil, false
	}
	s, ok := decodeString(inner)
	if !ok {
		return nil, false
	}
	return CalculationValue{Result: s}, true
}

// OrganisationTagValue is the single tag of an organisation-tag field.
type OrganisationTagValue struct {
	Tag string
}

func (v OrganisationTagValue) Data() map[string]interface{} {
	if v.Tag == "" {
		return nil
	}
	return map[string]interface{}{"value": v.Tag}
}

func (v OrganisationTagValue) Equal(other Value) bool {
	o, ok := other.(OrganisationTagValue)
	return ok && v.Tag == o.Tag
}

func decodeOrganisationTagValue(raw json.RawMessage) (Value, bool) {
	inner, ok := unwrapValue(raw)
	if !ok {
		return nil, false
	}
	s, ok := decodeString(inner)
	if !ok {
		return nil, false
	}
	return OrganisationTagValue{Tag: s}, true
}
