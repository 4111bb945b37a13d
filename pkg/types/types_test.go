package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDecodeDefaultsMissingIDs(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Sam Doe"}`), &p))

	assert.Equal(t, UnsetID, p.ProfileID)
	assert.Equal(t, UnsetID, p.UserID)
	assert.Equal(t, UnsetID, p.OrgID)
	assert.Equal(t, UnsetID, p.Avatar)
	assert.Equal(t, "Sam Doe", p.Name)
}

func TestProfileEqual(t *testing.T) {
	a := Profile{ProfileID: 5, Name: "A"}
	b := Profile{ProfileID: 5, Name: "B"}
	assert.True(t, a.Equal(b), "identity is the profile id, not the display data")

	assert.False(t, Profile{ProfileID: UnsetID}.Equal(Profile{ProfileID: UnsetID}))
	assert.False(t, Profile{}.Equal(Profile{}))
}

func TestFileDecode(t *testing.T) {
	var f File
	require.NoError(t, json.Unmarshal([]byte(`{"file_id": 9, "name": "a.png", "size": 1024}`), &f))
	assert.Equal(t, int64(9), f.FileID)
	assert.Equal(t, int64(1024), f.Size)

	var missing File
	require.NoError(t, json.Unmarshal([]byte(`{"name": "b.png"}`), &missing))
	assert.Equal(t, UnsetID, missing.FileID)
	assert.False(t, f.Equal(missing))
}
