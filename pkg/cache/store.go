package cache

import (
	"errors"
	"os"
	"sync"
)

// ErrEmpty indicates the blob store has no saved cache yet.
var ErrEmpty = errors.New("cache store empty")

// Store persists the cache as a single serialized blob. Implementations
// must return ErrEmpty when nothing has been saved.
type Store interface {
	Load() ([]byte, error)
	Save(blob []byte) error
}

// FileStore keeps the blob in one JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the blob from disk.
func (s *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save writes the blob to disk with restricted permissions.
func (s *FileStore) Save(blob []byte) error {
	return os.WriteFile(s.path, blob, 0600)
}

// MemStore is an in-memory Store for tests and cache-disabled setups.
type MemStore struct {
	mu   sync.Mutex
	blob []byte
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load returns the held blob.
func (s *MemStore) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, ErrEmpty
	}
	out := make([]byte, len(s.blob))
	copy(out, s.blob)
	return out, nil
}

// Save replaces the held blob.
func (s *MemStore) Save(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = make([]byte, len(blob))
	copy(s.blob, blob)
	return nil
}
