// Package validation checks user-supplied identifiers before they reach
// the API client or the shell.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Validator validates and sanitizes CLI input.
type Validator struct {
	externalIDPattern  *regexp.Regexp
	sessionNamePattern *regexp.Regexp

	injectionPatterns []*regexp.Regexp
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{
		// External ids are server-side slugs: lowercase alphanumerics,
		// hyphens and underscores, up to 128 characters.
		externalIDPattern: regexp.MustCompile(`^[a-z0-9_-]{1,128}$`),

		// Session names: alphanumeric with underscores, hyphens, dots.
		sessionNamePattern: regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`),

		injectionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`[;&|]`),
			regexp.MustCompile("`"),
			regexp.MustCompile(`\$\(`),
			regexp.MustCompile(`\$\{`),
			regexp.MustCompile(`\n|\r`),
			regexp.MustCompile(`\x00`),
		},
	}
}

// ValidateExternalID validates a field or item external id.
func (v *Validator) ValidateExternalID(externalID string) error {
	if externalID == "" {
		return fmt.Errorf("external id cannot be empty")
	}
	if !v.externalIDPattern.MatchString(externalID) {
		return fmt.Errorf("invalid external id: must contain only lowercase alphanumerics, underscores, and hyphens")
	}
	return nil
}

// ValidateID validates a numeric item or app id.
func (v *Validator) ValidateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id must be positive, got %d", id)
	}
	return nil
}

// ValidateSessionName validates a stored session name.
func (v *Validator) ValidateSessionName(name string) error {
	if name == "" {
		return fmt.Errorf("session name cannot be empty")
	}
	if !v.sessionNamePattern.MatchString(name) {
		return fmt.Errorf("invalid session name: must contain only alphanumerics, dots, underscores, and hyphens")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("invalid session name: must not contain '..'")
	}
	return nil
}

// ValidateBaseURL validates an API endpoint override.
func (v *Validator) ValidateBaseURL(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("invalid base URL scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}
	return nil
}

// ValidateUsername validates a login username. Usernames are email
// addresses; the check is deliberately shallow, the server is the
// authority.
func (v *Validator) ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if v.containsInjection(username) {
		return fmt.Errorf("username contains invalid characters")
	}
	if !strings.Contains(username, "@") {
		return fmt.Errorf("username must be an email address")
	}
	return nil
}

// SanitizeFieldInput rejects raw field values carrying shell metacharacters
// or control bytes before they are echoed back to the terminal.
func (v *Validator) SanitizeFieldInput(input string) error {
	if v.containsInjection(input) {
		return fmt.Errorf("input contains invalid characters")
	}
	return nil
}

func (v *Validator) containsInjection(input string) bool {
	for _, pattern := range v.injectionPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}
