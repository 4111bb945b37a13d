// Package config loads the CLI configuration: API endpoint, OAuth client
// credentials, logging, and the session store location. Values come from
// the config file with GRID_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrConfigNotFound is returned when the config file is not found by Load.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config is the application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
	Session SessionConfig `mapstructure:"session"`
}

// APIConfig holds the endpoint and OAuth client credentials.
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// LoggingConfig controls the structured event log.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// SessionConfig controls the encrypted session store.
type SessionConfig struct {
	Store string `mapstructure:"store"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		API: APIConfig{
			BaseURL:   "https://api.grid.example.com",
			Timeout:   30 * time.Second,
			UserAgent: "grid-go",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dir, "grid.log"),
		},
		Session: SessionConfig{
			Store: filepath.Join(dir, "session.enc"),
		},
	}
}

// Load reads configuration from the given file, or from the default
// location when configFile is empty. Environment variables with the GRID
// prefix override file values (GRID_API_CLIENT_ID and so on).
func Load(configFile string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	resolved := configFile
	if resolved == "" {
		resolved = DefaultConfigFile()
	}
	v.SetConfigFile(resolved)

	v.SetEnvPrefix("GRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		return nil, ErrConfigNotFound
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// LoadOrCreate loads the configuration, writing the default config file
// first when none exists yet.
func LoadOrCreate(configFile string) (*Config, error) {
	config, err := Load(configFile)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, err
	}

	config = DefaultConfig()
	target := configFile
	if target == "" {
		target = DefaultConfigFile()
	}
	if err := config.Save(target); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the configuration to the given file, creating the directory
// as needed. The file is written user-only because it can carry the client
// secret.
func (c *Config) Save(configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("api.base_url", c.API.BaseURL)
	v.Set("api.client_id", c.API.ClientID)
	v.Set("api.client_secret", c.API.ClientSecret)
	v.Set("api.timeout", c.API.Timeout)
	v.Set("api.user_agent", c.API.UserAgent)
	v.Set("logging.level", c.Logging.Level)
	v.Set("logging.file", c.Logging.File)
	v.Set("session.store", c.Session.Store)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(configFile, 0600); err != nil {
		return fmt.Errorf("failed to restrict config file permissions: %w", err)
	}
	return nil
}

// Validate checks the configuration for values that would break at first
// use.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	return nil
}

// Dir returns the configuration directory, honoring GRID_CONFIG_DIR.
func Dir() string {
	if dir := os.Getenv("GRID_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".grid"
	}
	return filepath.Join(home, ".grid")
}

// DefaultConfigFile returns the default config file path.
func DefaultConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}
