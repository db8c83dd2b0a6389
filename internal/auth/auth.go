// Package auth handles the OAuth authorization-code flow shared by every
// command: loading the client secret, storing tokens, refreshing them, and
// building the consent URL when no usable token exists.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/plexiform/gdocs-cli/internal/google"
)

const (
	DocsScope     = "https://www.googleapis.com/auth/documents"
	DriveScope    = "https://www.googleapis.com/auth/drive"
	SheetsScope   = "https://www.googleapis.com/auth/spreadsheets"
	CalendarScope = "https://www.googleapis.com/auth/calendar"
	ContactsScope = "https://www.googleapis.com/auth/contacts"
	GmailScope    = "https://www.googleapis.com/auth/gmail.modify"
)

// SharedScopes is the scope set requested during authorization; one grant
// covers every service this tool talks to.
var SharedScopes = []string{
	DriveScope,
	SheetsScope,
	DocsScope,
	CalendarScope,
	ContactsScope,
	GmailScope,
}

const (
	defaultAuthURI  = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURI = "https://oauth2.googleapis.com/token"
	oobRedirectURI  = "urn:ietf:wg:oauth:2.0:oob"
)

// Paths locates the two credential files.
type Paths struct {
	Credentials string
	Token       string
}

// DefaultPaths returns the shared credential locations under the user's
// home directory.
func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	return Paths{
		Credentials: filepath.Join(home, ".claude", ".google", "client_secret.json"),
		Token:       filepath.Join(home, ".claude", ".google", "token.json"),
	}, nil
}

// ClientConfig is the OAuth client identity from client_secret.json.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	AuthURI      string
	TokenURI     string
}

// RequiredError signals that no usable token exists and the user must
// complete the consent flow at AuthURL.
type RequiredError struct {
	AuthURL string
}

func (e *RequiredError) Error() string {
	return "authorization required"
}

// LoadClientConfig reads a Google client secret file, accepting either the
// "installed" or "web" section.
func LoadClientConfig(path string) (*ClientConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	var parsed struct {
		Installed *clientSection `json:"installed"`
		Web       *clientSection `json:"web"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse credentials JSON %s: %w", path, err)
	}

	section := parsed.Installed
	if section == nil {
		section = parsed.Web
	}
	if section == nil {
		return nil, fmt.Errorf("expected installed or web section in %s", path)
	}

	cfg := &ClientConfig{
		ClientID:     section.ClientID,
		ClientSecret: section.ClientSecret,
		AuthURI:      section.AuthURI,
		TokenURI:     section.TokenURI,
	}
	if cfg.AuthURI == "" {
		cfg.AuthURI = defaultAuthURI
	}
	if cfg.TokenURI == "" {
		cfg.TokenURI = defaultTokenURI
	}
	return cfg, nil
}

type clientSection struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AuthURI      string `json:"auth_uri"`
	TokenURI     string `json:"token_uri"`
}

// BuildAuthURL returns the consent URL for the out-of-band flow.
func BuildAuthURL(cfg *ClientConfig, scopes []string) (string, error) {
	u, err := url.Parse(cfg.AuthURI)
	if err != nil {
		return "", fmt.Errorf("invalid auth URI: %w", err)
	}
	q := u.Query()
	q.Set("client_id", cfg.ClientID)
	q.Set("redirect_uri", oobRedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(scopes, " "))
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// CompleteAuthorization exchanges an authorization code for a token. When
// the response carries no refresh token, existingRefresh is kept so a
// re-auth does not lose offline access.
func CompleteAuthorization(ctx context.Context, cfg *ClientConfig, code, existingRefresh string) (*Token, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {cfg.ClientID},
		"client_secret": {cfg.ClientSecret},
		"redirect_uri":  {oobRedirectURI},
		"grant_type":    {"authorization_code"},
	}

	payload, err := postTokenForm(ctx, cfg.TokenURI, form)
	if err != nil {
		return nil, err
	}

	refresh := payload.RefreshToken
	if refresh == "" {
		refresh = existingRefresh
	}
	if refresh == "" {
		return nil, fmt.Errorf("no refresh token received; re-run auth with consent prompt")
	}

	return &Token{
		ClientID:             cfg.ClientID,
		AccessToken:          payload.AccessToken,
		RefreshToken:         refresh,
		Scope:                splitScopes(payload.Scope),
		ExpirationTimeMillis: computeExpiration(payload.ExpiresIn),
	}, nil
}

// Refresh exchanges the refresh token for a fresh access token, updating
// tok in place.
func Refresh(ctx context.Context, cfg *ClientConfig, tok *Token) error {
	if tok.RefreshToken == "" {
		return fmt.Errorf("cannot refresh token without refresh_token")
	}

	form := url.Values{
		"client_id":     {cfg.ClientID},
		"client_secret": {cfg.ClientSecret},
		"refresh_token": {tok.RefreshToken},
		"grant_type":    {"refresh_token"},
	}

	payload, err := postTokenForm(ctx, cfg.TokenURI, form)
	if err != nil {
		return err
	}

	tok.AccessToken = payload.AccessToken
	tok.ExpirationTimeMillis = computeExpiration(payload.ExpiresIn)
	if payload.Scope != "" {
		tok.Scope = splitScopes(payload.Scope)
	}
	return nil
}

// EnsureToken returns a valid token, refreshing a stale one and persisting
// the result. When no token can be produced without user interaction it
// returns a *RequiredError carrying the consent URL.
func EnsureToken(ctx context.Context, paths Paths) (*Token, error) {
	cfg, err := LoadClientConfig(paths.Credentials)
	if err != nil {
		return nil, err
	}

	tok, err := LoadToken(paths.Token)
	if err != nil {
		return nil, authRequired(cfg)
	}

	if tok.Expired(time.Now()) {
		if tok.RefreshToken == "" {
			return nil, authRequired(cfg)
		}
		if err := Refresh(ctx, cfg, tok); err != nil {
			return nil, err
		}
		if err := SaveToken(paths.Token, tok); err != nil {
			return nil, err
		}
	}

	return tok, nil
}

func authRequired(cfg *ClientConfig) error {
	authURL, err := BuildAuthURL(cfg, SharedScopes)
	if err != nil {
		return err
	}
	return &RequiredError{AuthURL: authURL}
}

func postTokenForm(ctx context.Context, tokenURI string, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := google.ExtractErrorMessage(body); msg != "" {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed parsing token response: %w", err)
	}
	return &payload, nil
}

func computeExpiration(expiresIn int64) int64 {
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	return time.Now().UnixMilli() + expiresIn*1000
}

func splitScopes(scope string) ScopeList {
	if scope == "" {
		return nil
	}
	return strings.Fields(scope)
}
