package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateExternalID(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		externalID string
		wantErr    bool
	}{
		{name: "simple", externalID: "title", wantErr: false},
		{name: "with hyphen and digits", externalID: "contact-2", wantErr: false},
		{name: "with underscore", externalID: "delivery_date", wantErr: false},
		{name: "empty", externalID: "", wantErr: true},
		{name: "uppercase", externalID: "Title", wantErr: true},
		{name: "spaces", externalID: "delivery date", wantErr: true},
		{name: "shell metacharacter", externalID: "title;rm", wantErr: true},
		{name: "too long", externalID: string(make([]byte, 129)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateExternalID(tt.externalID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.ValidateID(1))
	assert.NoError(t, v.ValidateID(123456789))
	assert.Error(t, v.ValidateID(0))
	assert.Error(t, v.ValidateID(-1))
}

func TestValidateSessionName(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateSessionName("default"))
	assert.NoError(t, v.ValidateSessionName("work.staging"))
	assert.Error(t, v.ValidateSessionName(""))
	assert.Error(t, v.ValidateSessionName("has space"))
	assert.Error(t, v.ValidateSessionName("../../etc/passwd"))
	assert.Error(t, v.ValidateSessionName("a..b"))
}

func TestValidateBaseURL(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateBaseURL("https://api.grid.example.com"))
	assert.NoError(t, v.ValidateBaseURL("http://localhost:8080"))
	assert.Error(t, v.ValidateBaseURL(""))
	assert.Error(t, v.ValidateBaseURL("ftp://api.grid.example.com"))
	assert.Error(t, v.ValidateBaseURL("https://"))
	assert.Error(t, v.ValidateBaseURL("://bad"))
}

func TestValidateUsername(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateUsername("alice@example.com"))
	assert.Error(t, v.ValidateUsername(""))
	assert.Error(t, v.ValidateUsername("no-at-sign"))
	assert.Error(t, v.ValidateUsername("alice@example.com; rm -rf /"))
	assert.Error(t, v.ValidateUsername("alice@example.com\nX-Inject: 1"))
}

func TestSanitizeFieldInput(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.SanitizeFieldInput("ACME renewal Q3"))
	assert.NoError(t, v.SanitizeFieldInput("amount: 1200.50 EUR"))
	assert.Error(t, v.SanitizeFieldInput("$(cat /etc/passwd)"))
	assert.Error(t, v.SanitizeFieldInput("value`whoami`"))
	assert.Error(t, v.SanitizeFieldInput("line1\nline2"))
	assert.Error(t, v.SanitizeFieldInput("null\x00byte"))
}
