package item

import "encoding/json"

// LocationValue carries a free-text address plus an optional structured
// breakdown and coordinates. The free-text value is the anchor: when it is
// empty the whole value projects to nothing, and when it is set the full
// structured bundle is projected alongside it.
type LocationValue struct {
	Value         string
	StreetAddress string
	PostalCode    string
	City          string
	State         string
	Country       string
	Lat           *float64
	Lng           *float64
	MapInSync     *bool
}

func (v LocationValue) Data() map[string]interface{} {
	if v.Value == "" {
		return nil
	}
	data := map[string]interface{}{"value": v.Value}
	if v.StreetAddress != "" {
		data["street_address"] = v.StreetAddress
	}
	if v.PostalCode != "" {
		data["postal_code"] = v.PostalCode
	}
	if v.City != "" {
		data["city"] = v.City
	}
	if v.State != "" {
		data["state"] = v.State
	}
	if v.Country != "" {
		data["country"] = v.Country
	}
	if v.Lat != nil {
		data["lat"] = *v.Lat
	}
	if v.Lng != nil {
		data["lng"] = *v.Lng
	}
	if v.MapInSync != nil {
		data["map_in_sync"] = *v.MapInSync
	}
	return data
}

// Equal compares the full address bundle, coordinates included.
func (v LocationValue) Equal(other Value) bool {
	o, ok := other.(LocationValue)
	if !ok {
		return false
	}
	return v.Value == o.Value &&
		v.StreetAddress == o.StreetAddress &&
		v.PostalCode == o.PostalCode &&
		v.City == o.City &&
		v.State == o.State &&
		v.Country == o.Country &&
		floatPtrEqual(v.Lat, o.Lat) &&
		floatPtrEqual(v.Lng, o.Lng)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func decodeLocationValue(raw json.RawMessage) (Value, bool) {
	var env struct {
		Value         json.RawMessage `json:"value"`
		StreetAddress string          `json:"street_address"`
		PostalCode    string          `json:"postal_code"`
		City          string          `json:"city"`
		State         string          `json:"state"`
		Country       string          `json:"country"`
		Lat           *float64        `json:"lat"`
		Lng           *float64        `json:"lng"`
		MapInSync     *bool           `json:"map_in_sync"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Value) == 0 {
		return nil, false
	}
	value, ok := decodeString(env.Value)
	if !ok {
		return nil, false
	}
	return LocationValue{
		Value:         value,
		StreetAddress: env.StreetAddress,
		PostalCode:    env.PostalCode,
		City:          env.City,
		State:         env.State,
		Country:       env.Country,
		Lat:           env.Lat,
		Lng:           env.Lng,
		MapInSync:     env.MapInSync,
	}, true
}
