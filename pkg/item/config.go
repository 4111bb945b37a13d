package item

import "encoding/json"

// Configuration is a field's server-declared metadata: shared attributes
// plus type-specific settings. It describes constraints the server enforces
// and is read-only from the client's point of view; nothing in this package
// mutates a configuration after decode.
type Configuration struct {
	Label       string
	Description string

	// Delta is the field's ordering hint within the application template.
	Delta int

	Hidden   bool
	Required bool
	Visible  bool

	// DefaultValue is the raw default the server declared for the field,
	// kept undecoded since its shape follows the field type.
	DefaultValue json.RawMessage

	// Settings holds the type-specific configuration, or nil when the
	// field type declares none (or the type is unknown).
	Settings Settings
}

// Settings is the marker interface for per-type configuration payloads.
type Settings interface {
	settings()
}

// CategorySettings configures a category field: its option list, how the
// options are displayed, and whether more than one may be selected.
type CategorySettings struct {
	Display  string           `json:"display,omitempty"`
	Multiple bool             `json:"multiple,omitempty"`
	Options  []CategoryOption `json:"options,omitempty"`
}

func (*CategorySettings) settings() {}

// OptionByID returns the declared option with the given id.
func (s *CategorySettings) OptionByID(id int64) (CategoryOption, bool) {
	for _, opt := range s.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return CategoryOption{}, false
}

// TextSettings configures a text field's format and editor size.
type TextSettings struct {
	Format string `json:"format,omitempty"`
	Size   string `json:"size,omitempty"`
}

func (*TextSettings) settings() {}

// DateSettings configures a date field: whether it shows on calendars and
// whether end dates and times of day are enabled.
type DateSettings struct {
	Calendar bool   `json:"calendar,omitempty"`
	End      string `json:"end,omitempty"`
	Time     string `json:"time,omitempty"`
}

func (*DateSettings) settings() {}

// DurationSettings lists the sub-units (days, hours, minutes, seconds) a
// client should offer when editing the duration.
type DurationSettings struct {
	Fields []string `json:"fields,omitempty"`
}

func (*DurationSettings) settings() {}

// ContactSettings restricts which audience a contact field may reference,
// e.g. "space_users" or "all_users".
type ContactSettings struct {
	Type string `json:"type,omitempty"`
}

func (*ContactSettings) settings() {}

// MoneySettings lists the currencies a money field accepts.
type MoneySettings struct {
	AllowedCurrencies []string `json:"allowed_currencies,omitempty"`
}

func (*MoneySettings) settings() {}

// configEnvelope is the wire shape of a field's config block. Visible
// defaults to true when the server omits it, hence the pointer.
type configEnvelope struct {
	Label        string          `json:"label"`
	Description  string          `json:"description"`
	Delta        int             `json:"delta"`
	Hidden       bool            `json:"hidden"`
	Required     bool            `json:"required"`
	Visible      *bool           `json:"visible"`
	DefaultValue json.RawMessage `json:"default_value"`
	Settings     json.RawMessage `json:"settings"`
}

// decodeConfiguration decodes a config block for a field of the given type.
// It is lenient by design: an unreadable block yields nil (the field simply
// has no configuration), unknown keys are ignored, and unreadable settings
// leave Settings nil.
func decodeConfiguration(t Type, raw json.RawMessage) *Configuration {
	if len(raw) == 0 {
		return nil
	}
	var env configEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}

	cfg := &Configuration{
		Label:        env.Label,
		Description:  env.Description,
		Delta:        env.Delta,
		Hidden:       env.Hidden,
		Required:     env.Required,
		Visible:      env.Visible == nil || *env.Visible,
		DefaultValue: env.DefaultValue,
	}
	cfg.Settings = decodeSettings(t, env.Settings)
	return cfg
}

func decodeSettings(t Type, raw json.RawMessage) Settings {
	if len(raw) == 0 {
		return nil
	}
	switch t {
	case TypeCategory:
		return decodeInto(raw, &CategorySettings{})
	case TypeText:
		return decodeInto(raw, &TextSettings{})
	case TypeDate:
		return decodeInto(raw, &DateSettings{})
	case TypeDuration:
		return decodeInto(raw, &DurationSettings{})
	case TypeContact:
		return decodeInto(raw, &ContactSettings{})
	case TypeMoney:
		return decodeInto(raw, &MoneySettings{})
	default:
		return nil
	}
}

func decodeInto[S Settings](raw json.RawMessage, s S) Settings {
	if err := json.Unmarshal(raw, s); err != nil {
		return nil
	}
	return s
}
