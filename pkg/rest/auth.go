package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// expiryMargin is subtracted from a token's lifetime so a session reads as
// expired slightly before the server would reject it.
const expiryMargin = 30 * time.Second

// Session is an authenticated API session: the bearer token plus what is
// needed to refresh it.
type Session struct {
	AccessToken   string    `json:"access_token"`
	RefreshToken  string    `json:"refresh_token"`
	TransferToken string    `json:"transfer_token,omitempty"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Expired reports whether the access token is past (or within the safety
// margin of) its expiry.
func (s *Session) Expired() bool {
	if s == nil || s.AccessToken == "" {
		return true
	}
	return !time.Now().Before(s.ExpiresAt.Add(-expiryMargin))
}

// Authenticator obtains and refreshes sessions against the token endpoint.
type Authenticator struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
	now          func() time.Time
}

// NewAuthenticator creates an authenticator for the given API credentials.
func NewAuthenticator(clientID, clientSecret string, opts ...AuthOption) *Authenticator {
	a := &Authenticator{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      DefaultBaseURL,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AuthOption configures an Authenticator.
type AuthOption func(*Authenticator)

// WithAuthBaseURL overrides the token endpoint's base URL.
func WithAuthBaseURL(baseURL string) AuthOption {
	return func(a *Authenticator) { a.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithAuthHTTPClient overrides the underlying HTTP client.
func WithAuthHTTPClient(hc *http.Client) AuthOption {
	return func(a *Authenticator) { a.httpClient = hc }
}

// AuthenticateWithPassword performs the password grant and returns a fresh
// session.
func (a *Authenticator) AuthenticateWithPassword(ctx context.Context, username, password string) (*Session, error) {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	}
	return a.tokenRequest(ctx, form)
}

// RefreshSession exchanges a session's refresh token for a new session.
func (a *Authenticator) RefreshSession(ctx context.Context, session *Session) (*Session, error) {
	if session == nil || session.RefreshToken == "" {
		return nil, fmt.Errorf("no refresh token available")
	}
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {session.RefreshToken},
	}
	return a.tokenRequest(ctx, form)
}

func (a *Authenticator) tokenRequest(ctx context.Context, form url.Values) (*Session, error) {
	form.Set("client_id", a.clientID)
	form.Set("client_secret", a.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return nil, fmt.Errorf("authentication failed: %w", apiErr)
	}

	var body struct {
		AccessToken   string `json:"access_token"`
		RefreshToken  string `json:"refresh_token"`
		TransferToken string `json:"transfer_token"`
		ExpiresIn     int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("token response carried no access token")
	}

	return &Session{
		AccessToken:   body.AccessToken,
		RefreshToken:  body.RefreshToken,
		TransferToken: body.TransferToken,
		ExpiresAt:     a.now().Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}

// SessionTokens adapts a session (plus an authenticator for refresh) into a
// TokenProvider. When the session is expired and a refresh token is
// available, the token is refreshed in place before use.
type SessionTokens struct {
	Session       *Session
	Authenticator *Authenticator
}

// AccessToken returns the session's token, refreshing it first when needed.
func (s *SessionTokens) AccessToken(ctx context.Context) (string, error) {
	if s.Session == nil {
		return "", fmt.Errorf("no session")
	}
	if s.Session.Expired() {
		if s.Authenticator == nil {
			return "", fmt.Errorf("session expired and no authenticator configured")
		}
		fresh, err := s.Authenticator.RefreshSession(ctx, s.Session)
		if err != nil {
			return "", fmt.Errorf("failed to refresh session: %w", err)
		}
		*s.Session = *fresh
	}
	return s.Session.AccessToken, nil
}
