package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable slot holding the current token pair. It performs
// no expiry tracking; it only remembers the last pair it was given.
type Store interface {
	// Access returns the stored access token, or "" if none is stored.
	Access() string
	// Refresh returns the stored refresh token, or "" if none is stored.
	Refresh() string
	// Set persists both tokens, overwriting any prior pair. The write is
	// complete when Set returns.
	Set(access, refresh string) error
	// Clear removes both tokens. Clearing an empty store is a no-op.
	Clear() error
}

type tokenFile struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// FileStore persists the token pair as a JSON file, so the pair survives
// process restarts. The file is created with 0600 permissions.
type FileStore struct {
	mu    sync.Mutex
	path  string
	cache tokenFile
}

// OpenFileStore loads any previously stored pair from path. A missing
// file is treated as an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	if err := json.Unmarshal(data, &s.cache); err != nil {
		// A corrupt token file is equivalent to being signed out.
		s.cache = tokenFile{}
	}
	return s, nil
}

func (s *FileStore) Access() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Access
}

func (s *FileStore) Refresh() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Refresh
}

func (s *FileStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.cache
	s.cache = tokenFile{Access: access, Refresh: refresh}
	if err := s.write(); err != nil {
		s.cache = prev
		return err
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = tokenFile{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear token file: %w", err)
	}
	return nil
}

func (s *FileStore) write() error {
	data, err := json.Marshal(s.cache)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// MemoryStore keeps the token pair in memory only. Used in tests and
// when no durable path is configured.
type MemoryStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Access() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *MemoryStore) Refresh() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

func (s *MemoryStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
