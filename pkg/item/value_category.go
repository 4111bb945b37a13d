package item

import "encoding/json"

// CategoryOption is one selectable option of a category field, as declared
// in the field's configuration. Status, text and color are display hints
// the server returns alongside the id.
type CategoryOption struct {
	ID     int64  `json:"id"`
	Status string `json:"status,omitempty"`
	Text   string `json:"text,omitempty"`
	Color  string `json:"color,omitempty"`
}

// CategoryValue references a category option by id. The server may echo the
// option's status/color/text with the value; those are cached for display
// and ignored for equality and projection.
type CategoryValue struct {
	Option CategoryOption
}

// NewCategoryValue returns a value referencing the option with the given id.
func NewCategoryValue(optionID int64) CategoryValue {
	return CategoryValue{Option: CategoryOption{ID: optionID}}
}

func (v CategoryValue) Data() map[string]interface{} {
	if v.Option.ID <= 0 {
		return nil
	}
	return map[string]interface{}{"value": v.Option.ID}
}

// Equal compares by option id only.
func (v CategoryValue) Equal(other Value) bool {
	o, ok := other.(CategoryValue)
	return ok && v.Option.ID == o.Option.ID
}

// decodeCategoryValue accepts both wire forms: the full option object the
// server returns, and the bare numeric id a write-back payload carries.
func decodeCategoryValue(raw json.RawMessage) (Value, bool) {
	inner, ok := unwrapValue(raw)
	if !ok {
		return nil, false
	}

	var opt CategoryOption
	if err := json.Unmarshal(inner, &opt); err == nil && opt.ID != 0 {
		return CategoryValue{Option: opt}, true
	}

	if id, ok := decodeInt64(inner); ok {
		return NewCategoryValue(id), true
	}
	return nil, false
}
