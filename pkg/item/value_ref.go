package item

import (
	"encoding/json"

	"github.com/gridapp/grid-go/pkg/types"
)

// ContactValue references a workspace profile. Equality and projection
// delegate to the referenced profile: a profile without a positive id
// projects to nothing.
type ContactValue struct {
	Profile types.Profile
}

// NewContactValue returns a value referencing the profile with the given id.
func NewContactValue(profileID int64) ContactValue {
	return ContactValue{Profile: types.Profile{ProfileID: profileID}}
}

func (v ContactValue) Data() map[string]interface{} {
	if v.Profile.ProfileID <= 0 {
		return nil
	}
	return map[string]interface{}{"value": v.Profile.ProfileID}
}

func (v ContactValue) Equal(other Value) bool {
	o, ok := other.(ContactValue)
	return ok && v.Profile.Equal(o.Profile)
}

// decodeContactValue accepts the embedded profile object or a bare
// profile id.
func decodeContactValue(raw json.RawMessage) (Value, bool) {
	inner, ok := unwrapValue(raw)
	if !ok {
		return nil, false
	}

	var profile types.Profile
	if err := json.Unmarshal(inner, &profile); err == nil && profile.ProfileID > 0 {
		return ContactValue{Profile: profile}, true
	}

	if id, ok := decodeInt64(inner); ok {
		return NewContactValue(id), true
	}
	return nil, false
}

// AppValue references another item, typically in a different application.
// A reference to an item without a positive id projects to nothing.
type AppValue struct {
	Item *Item
}

// NewAppValue returns a value referencing the item with the given id.
func NewAppValue(itemID int64) AppValue {
	ref := NewItem()
	ref.itemID = itemID
	return AppValue{Item: ref}
}

func (v AppValue) Data() map[string]interface{} {
	if v.Item == nil || v.Item.ItemID() <= 0 {
		return nil
	}
	return map[string]interface{}{"value": v.Item.ItemID()}
}

// Equal delegates to the referenced item's identity equality.
func (v AppValue) Equal(other Value) bool {
	o, ok := other.(AppValue)
	if !ok || v.Item == nil || o.Item == nil {
		return false
	}
	return v.Item.Equal(o.Item)
}

func decodeAppValue(raw json.RawMessage) (Value, bool) {
	inner, ok := unwrapValue(raw)
	if !ok {
		return nil, false
	}

	ref := NewItem()
	if err := json.Unmarshal(inner, ref); err == nil && ref.ItemID() > 0 {
		return AppValue{Item: ref}, true
	}

	if id, ok := decodeInt64(inner); ok {
		return NewAppValue(id), true
	}
	return nil, false
}

// ImageValue references an uploaded file.
type ImageValue struct {
	File types.File
}

// NewImageValue returns a value referencing the file with the given id.
func NewImageValue(fileID int64) ImageValue {
	return ImageValue{File: types.File{FileID: fileID}}
}

func (v ImageValue) Data() map[string]interface{} {
	if v.File.FileID <= 0 {
		return nil
	}
	return map[string]interface{}{"value": v.File.FileID}
}

func (v ImageValue) Equal(other Value) bool {
	o, ok := other.(ImageValue)
	return ok && v.File.Equal(o.File)
}

func decodeImageValue(raw json.RawMessage) (Value, bool) {
	inner, ok := unwrapValue(raw)
	if !ok {
		return nil, false
	}

	var file types.File
	if err := json.Unmarshal(inner, &file); err == nil && file.FileID > 0 {
		return ImageValue{File: file}, true
	}

	if id, ok := decodeInt64(inner); ok {
		return NewImageValue(id), true
	}
	return nil, false
}
