package credstore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store holds the operator's bearer token between invocations
type Store interface {
	// Read returns the stored token, or "" if none is stored
	Read() (string, error)
	// Save persists the token
	Save(token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}

// FileStore persists the token in a file under the operator's home directory
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
// An empty path uses the default location.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultTokenFile()
	}
	return &FileStore{path: path}
}

// DefaultTokenFile returns the default token file location
func DefaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".panelctl/token"
	}
	return filepath.Join(home, ".panelctl", "token")
}

// Path returns the token file location
func (s *FileStore) Path() string {
	return s.path
}

// Read returns the stored token, or "" if the file does not exist
func (s *FileStore) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with owner-only permissions
func (s *FileStore) Save(token string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0600)
}

// Clear removes the token file
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemStore is an in-memory store for tests
type MemStore struct {
	mu    sync.Mutex
	token string
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Read returns the stored token
func (s *MemStore) Read() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Save stores the token
func (s *MemStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the token
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
