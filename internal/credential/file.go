package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// authTokenKey is the JSON key the token is stored under. Kept stable so the
// credential file survives upgrades.
const authTokenKey = "auth_token"

// FileStore persists the token to a JSON file, the CLI-side analogue of the
// web storefront's localStorage entry. The file is created with 0600 and the
// token is cached in memory after the first read.
type FileStore struct {
	path string

	mu     sync.Mutex
	token  string
	loaded bool
}

// NewFileStore creates a store backed by the given path. The parent
// directory is created on first write, not here, so constructing a store for
// a read-only environment stays cheap.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("credential file path is required")
	}
	return &FileStore{path: path}, nil
}

// DefaultPath returns the conventional credential location under the user
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "shopfront", "credentials.json"), nil
}

func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.token = s.readFile()
		s.loaded = true
	}
	return s.token
}

func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeFile(token); err != nil {
		return err
	}
	s.token = token
	s.loaded = true
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credential file: %w", err)
	}
	return nil
}

// readFile loads the token from disk, returning "" on any failure. A missing
// or corrupt credential file just means "not signed in".
func (s *FileStore) readFile() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}

	var payload map[string]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload[authTokenKey]
}

func (s *FileStore) writeFile(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating credential dir: %w", err)
	}

	data, err := json.Marshal(map[string]string{authTokenKey: token})
	if err != nil {
		return fmt.Errorf("encoding credential: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing credential file: %w", err)
	}
	return nil
}
