package dnote

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	xdgAppName = "duenote"

	// tokenFile is where the session key obtained from signin is stored,
	// under the user's config directory.
	tokenFile = "token.json"
)

type storedToken struct {
	Key        string    `json:"key"`
	ObtainedAt time.Time `json:"obtained_at"`
}

// TokenStore persists the session key between runs so every invocation
// doesn't have to sign in again.
type TokenStore struct {
	Path string
}

func NewTokenStore() (*TokenStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &TokenStore{Path: filepath.Join(home, ".config", xdgAppName, tokenFile)}, nil
}

// Load returns the cached session key, or an error if none is stored.
func (s *TokenStore) Load() (string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var tok storedToken
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode token file: %w", err)
	}
	return tok.Key, nil
}

func (s *TokenStore) Save(key string) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(s.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open token file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(storedToken{Key: key, ObtainedAt: time.Now()})
}

// Clear removes the cached key. A missing file is not an error.
func (s *TokenStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
