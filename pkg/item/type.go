package item

import "encoding/json"

// Type is the wire identifier for a field type. The tag set is open: the
// server may introduce new types at any time, so ParseType maps anything
// unrecognized to TypeUndefined instead of failing.
type Type string

const (
	TypeText               Type = "text"
	TypeCategory           Type = "category"
	TypeDate               Type = "date"
	TypeContact            Type = "contact"
	TypeApp                Type = "app"
	TypeMoney              Type = "money"
	TypeDuration           Type = "duration"
	TypeCalculation        Type = "calculation"
	TypeLocation           Type = "location"
	TypeEmail              Type = "email"
	TypePhone              Type = "phone"
	TypeImage              Type = "image"
	TypeProgress           Type = "progress"
	TypeReminder           Type = "reminder"
	TypeReminderRecurrence Type = "reminder_recurrence"
	TypeOrganisationTag    Type = "organisation_tag"

	// TypeUndefined is the forward-compatibility fallback for type tags
	// this client does not know.
	TypeUndefined Type = "undefined"
)

// ParseType resolves a wire type tag. It is total: unknown tags resolve to
// TypeUndefined, never an error.
func ParseType(tag string) Type {
	if _, ok := registry[Type(tag)]; ok {
		return Type(tag)
	}
	return TypeUndefined
}

// Status is the lifecycle state of a field as reported by the server.
type Status string

const (
	StatusActive    Status = "active"
	StatusDeleted   Status = "deleted"
	StatusUndefined Status = "undefined"
)

// ParseStatus resolves a wire status, falling back to StatusUndefined.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusActive, StatusDeleted:
		return Status(s)
	default:
		return StatusUndefined
	}
}

// variant binds the per-type behavior a Field consults at runtime: how to
// decode one raw value payload, and whether the field holds many values
// (append with dedup) or one (add replaces). Multiplicity may depend on the
// field's configuration, e.g. category fields with the "multiple" setting.
type variant struct {
	decodeValue func(raw json.RawMessage) (Value, bool)
	multiValued func(cfg *Configuration) bool
}

func single(*Configuration) bool { return false }
func multi(*Configuration) bool  { return true }

func categoryMulti(cfg *Configuration) bool {
	if cfg == nil {
		return false
	}
	s, ok := cfg.Settings.(*CategorySettings)
	return ok && s.Multiple
}

// registry maps every known type tag to its variant. TypeUndefined is
// intentionally absent: undefined fields bypass value decoding and discard
// mutation, see Field.
var registry = map[Type]variant{
	TypeText:               {decodeTextValue, single},
	TypeCategory:           {decodeCategoryValue, categoryMulti},
	TypeDate:               {decodeDateValue, single},
	TypeContact:            {decodeContactValue, multi},
	TypeApp:                {decodeAppValue, multi},
	TypeMoney:              {decodeMoneyValue, single},
	TypeDuration:           {decodeDurationValue, multi},
	TypeCalculation:        {decodeCalculationValue, multi},
	TypeLocation:           {decodeLocationValue, single},
	TypeEmail:              {decodeEmailValue, multi},
	TypePhone:              {decodePhoneValue, multi},
	TypeImage:              {decodeImageValue, multi},
	TypeProgress:           {decodeProgressValue, single},
	TypeReminder:           {decodeReminderValue, single},
	TypeReminderRecurrence: {decodeRecurrenceValue, single},
	TypeOrganisationTag:    {decodeOrganisationTagValue, single},
}

// variantFor returns the behavior for a type tag. Unknown tags (including
// TypeUndefined itself) get a variant that decodes nothing and is
// single-valued; Field short-circuits undefined mutation before this
// matters.
func variantFor(t Type) variant {
	if v, ok := registry[t]; ok {
		return v
	}
	return variant{
		decodeValue: func(json.RawMessage) (Value, bool) { return nil, false },
		multiValued: single,
	}
}
