package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("GRID_CONFIG_DIR", "/tmp/gridtest")

	config := DefaultConfig()
	assert.Equal(t, "https://api.grid.example.com", config.API.BaseURL)
	assert.Equal(t, 30*time.Second, config.API.Timeout)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "/tmp/gridtest/session.enc", config.Session.Store)
	assert.NoError(t, config.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("GRID_CONFIG_DIR", t.TempDir())
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	config := DefaultConfig()
	config.API.BaseURL = "https://staging.grid.example.com"
	config.API.ClientID = "my-client"
	config.API.ClientSecret = "my-secret"
	config.Logging.Level = "debug"
	require.NoError(t, config.Save(configFile))

	loaded, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.grid.example.com", loaded.API.BaseURL)
	assert.Equal(t, "my-client", loaded.API.ClientID)
	assert.Equal(t, "my-secret", loaded.API.ClientSecret)
	assert.Equal(t, "debug", loaded.Logging.Level)
	assert.Equal(t, 30*time.Second, loaded.API.Timeout)
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	t.Setenv("GRID_CONFIG_DIR", t.TempDir())
	configFile := filepath.Join(t.TempDir(), "config.yaml")

	created, err := LoadOrCreate(configFile)
	require.NoError(t, err)
	assert.Equal(t, "https://api.grid.example.com", created.API.BaseURL)

	// Second call loads the file written by the first.
	loaded, err := LoadOrCreate(configFile)
	require.NoError(t, err)
	assert.Equal(t, created.API.BaseURL, loaded.API.BaseURL)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("GRID_CONFIG_DIR", t.TempDir())
	t.Setenv("GRID_API_CLIENT_ID", "env-client")
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(configFile))

	loaded, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "env-client", loaded.API.ClientID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "timeout",
		},
		{
			name:    "bogus log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
