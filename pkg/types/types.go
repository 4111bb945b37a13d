// Package types holds the plain data objects the Grid API returns alongside
// items: profiles, files, spaces, organizations and users. These carry no
// behavior beyond identity comparison; the field/value core in pkg/item
// references them from contact and image values.
package types

import "encoding/json"

// UnsetID is the sentinel for numeric identifiers the server has not
// assigned. Missing ids decode to UnsetID rather than zero so that callers
// can tell "absent" from a (theoretically) zero id.
const UnsetID int64 = -1

// Profile represents a user's workspace profile as embedded in contact
// field values and item bylines.
type Profile struct {
	ProfileID int64    `json:"profile_id"`
	UserID    int64    `json:"user_id"`
	OrgID     int64    `json:"org_id"`
	SpaceID   int64    `json:"space_id"`
	Name      string   `json:"name"`
	Title     string   `json:"title,omitempty"`
	Link      string   `json:"link,omitempty"`
	Avatar    int64    `json:"avatar"`
	Mail      []string `json:"mail,omitempty"`
	Phone     []string `json:"phone,omitempty"`
}

// Equal reports whether both profiles reference the same server-side
// profile. Profiles without a server-assigned id are never equal.
func (p Profile) Equal(other Profile) bool {
	return p.ProfileID > 0 && p.ProfileID == other.ProfileID
}

// UnmarshalJSON decodes a profile, defaulting absent numeric ids to UnsetID.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type alias Profile
	aux := struct {
		ProfileID *int64 `json:"profile_id"`
		UserID    *int64 `json:"user_id"`
		OrgID     *int64 `json:"org_id"`
		SpaceID   *int64 `json:"space_id"`
		Avatar    *int64 `json:"avatar"`
		*alias
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.ProfileID = orUnset(aux.ProfileID)
	p.UserID = orUnset(aux.UserID)
	p.OrgID = orUnset(aux.OrgID)
	p.SpaceID = orUnset(aux.SpaceID)
	p.Avatar = orUnset(aux.Avatar)
	return nil
}

// File represents an uploaded file attached to an item or referenced by an
// image field value.
type File struct {
	FileID   int64  `json:"file_id"`
	Name     string `json:"name,omitempty"`
	Link     string `json:"link,omitempty"`
	MimeType string `json:"mimetype,omitempty"`
	Size     int64  `json:"size"`
	HostedBy string `json:"hosted_by,omitempty"`
}

// Equal reports whether both values reference the same uploaded file.
func (f File) Equal(other File) bool {
	return f.FileID > 0 && f.FileID == other.FileID
}

// UnmarshalJSON decodes a file, defaulting absent numeric ids to UnsetID.
func (f *File) UnmarshalJSON(data []byte) error {
	type alias File
	aux := struct {
		FileID *int64 `json:"file_id"`
		Size   *int64 `json:"size"`
		*alias
	}{alias: (*alias)(f)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	f.FileID = orUnset(aux.FileID)
	if aux.Size != nil {
		f.Size = *aux.Size
	}
	return nil
}

// Space represents a workspace within an organization.
type Space struct {
	SpaceID int64  `json:"space_id"`
	OrgID   int64  `json:"org_id"`
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Organization represents a Grid organization and its spaces.
type Organization struct {
	OrgID  int64   `json:"org_id"`
	Name   string  `json:"name,omitempty"`
	URL    string  `json:"url,omitempty"`
	Logo   int64   `json:"logo,omitempty"`
	Spaces []Space `json:"spaces,omitempty"`
}

// User represents the authenticated account, as returned by the user
// status endpoint.
type User struct {
	UserID   int64  `json:"user_id"`
	Mail     string `json:"mail,omitempty"`
	Status   string `json:"status,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Byline describes who created or modified an object.
type Byline struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

func orUnset(v *int64) int64 {
	if v == nil {
		return UnsetID
	}
	return *v
}
