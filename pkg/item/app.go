package item

import "encoding/json"

// Application describes an app within a space: identity, display config and
// the field template new items are seeded from.
type Application struct {
	AppID    int64
	SpaceID  int64
	Status   Status
	Name     string
	ItemName string
	Link     string
	Fields   []*Field
}

// Equal reports identity equality by server-assigned app id.
func (a *Application) Equal(other *Application) bool {
	if a == nil || other == nil {
		return false
	}
	return a.AppID > 0 && a.AppID == other.AppID
}

type appEnvelope struct {
	AppID   *int64 `json:"app_id"`
	SpaceID *int64 `json:"space_id"`
	Status  string `json:"status"`
	Link    string `json:"link"`
	Config  struct {
		Name     string `json:"name"`
		ItemName string `json:"item_name"`
	} `json:"config"`
	Fields []*Field `json:"fields"`
}

// UnmarshalJSON decodes an application with the same leniency as items:
// absent ids become UnsetID, fields go through the type registry.
func (a *Application) UnmarshalJSON(data []byte) error {
	var env appEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	a.AppID = UnsetID
	if env.AppID != nil {
		a.AppID = *env.AppID
	}
	a.SpaceID = UnsetID
	if env.SpaceID != nil {
		a.SpaceID = *env.SpaceID
	}
	a.Status = ParseStatus(env.Status)
	a.Name = env.Config.Name
	a.ItemName = env.Config.ItemName
	a.Link = env.Link
	a.Fields = env.Fields
	return nil
}
