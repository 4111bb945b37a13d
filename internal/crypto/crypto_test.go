package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	sealer := NewSealer("correct horse battery staple")

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "session json", plaintext: `{"access_token":"acc-1","refresh_token":"ref-1"}`},
		{name: "empty object", plaintext: "{}"},
		{name: "unicode", plaintext: "pässwörd π"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := sealer.Seal([]byte(tt.plaintext))
			require.NoError(t, err)
			assert.NotContains(t, blob, tt.plaintext)

			opened, err := sealer.Open(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, string(opened))
		})
	}
}

func TestSealDrawsFreshSalt(t *testing.T) {
	sealer := NewSealer("correct horse battery staple")

	first, err := sealer.Seal([]byte("same plaintext"))
	require.NoError(t, err)
	second, err := sealer.Seal([]byte("same plaintext"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestOpenRejectsWrongPassphrase(t *testing.T) {
	blob, err := NewSealer("correct horse battery staple").Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = NewSealer("wrong passphrase entirely").Open(blob)
	assert.Error(t, err)
}

func TestOpenRejectsTamperedBlob(t *testing.T) {
	sealer := NewSealer("correct horse battery staple")
	blob, err := sealer.Seal([]byte("secret"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = sealer.Open(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err)
}

func TestOpenRejectsMalformedInput(t *testing.T) {
	sealer := NewSealer("correct horse battery staple")

	_, err := sealer.Open("not base64!!!")
	assert.Error(t, err)

	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	_, err = sealer.Open(short)
	assert.Error(t, err)
}

func TestGeneratePassphrase(t *testing.T) {
	passphrase, err := GeneratePassphrase(32)
	require.NoError(t, err)
	assert.Len(t, passphrase, 32)

	other, err := GeneratePassphrase(32)
	require.NoError(t, err)
	assert.NotEqual(t, passphrase, other)

	_, err = GeneratePassphrase(8)
	assert.Error(t, err)
}

func TestValidatePassphrase(t *testing.T) {
	assert.NoError(t, ValidatePassphrase("long enough passphrase"))
	assert.Error(t, ValidatePassphrase("short"))
}
