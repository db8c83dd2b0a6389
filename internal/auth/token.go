package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Token is the stored OAuth token. The on-disk format is a YAML mapping
// whose "default" key holds the JSON-serialized token (the format other
// tooling sharing ~/.claude/.google already writes); a bare JSON file is
// accepted too.
type Token struct {
	ClientID             string    `json:"client_id" yaml:"client_id"`
	AccessToken          string    `json:"access_token" yaml:"access_token"`
	RefreshToken         string    `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	Scope                ScopeList `json:"scope,omitempty" yaml:"scope,omitempty"`
	ExpirationTimeMillis int64     `json:"expiration_time_millis" yaml:"expiration_time_millis"`
}

// ScopeList unmarshals from either a single scope string or a list.
type ScopeList []string

func (s *ScopeList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = ScopeList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

func (s *ScopeList) UnmarshalYAML(node *yaml.Node) error {
	var one string
	if err := node.Decode(&one); err == nil {
		*s = ScopeList{one}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*s = many
	return nil
}

// Expired reports whether the token is within a minute of expiry.
func (t *Token) Expired(now time.Time) bool {
	return now.UnixMilli() >= t.ExpirationTimeMillis-60_000
}

// LoadToken reads a stored token, trying plain JSON first and falling back
// to the YAML wrapper format.
func LoadToken(path string) (*Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	var tok Token
	if err := json.Unmarshal(raw, &tok); err == nil && tok.AccessToken != "" {
		return &tok, nil
	}

	var wrapper map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("token file %s is neither JSON nor YAML: %w", path, err)
	}
	node, ok := wrapper["default"]
	if !ok {
		return nil, fmt.Errorf("token file %s has no default entry", path)
	}

	// The default entry is usually a JSON string, but a plain YAML mapping
	// is accepted as well.
	if node.Kind == yaml.ScalarNode {
		var payload string
		if err := node.Decode(&payload); err != nil {
			return nil, fmt.Errorf("failed to read default token payload: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &tok); err != nil {
			return nil, fmt.Errorf("failed to parse default token payload: %w", err)
		}
		return &tok, nil
	}
	if err := node.Decode(&tok); err != nil {
		return nil, fmt.Errorf("failed to parse default token mapping: %w", err)
	}
	return &tok, nil
}

// SaveToken writes the token in the shared YAML wrapper format, creating
// parent directories as needed.
func SaveToken(path string, tok *Token) error {
	payload, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to serialize token: %w", err)
	}
	out, err := yaml.Marshal(map[string]string{"default": string(payload)})
	if err != nil {
		return fmt.Errorf("failed to serialize token wrapper: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", path, err)
	}
	return nil
}
