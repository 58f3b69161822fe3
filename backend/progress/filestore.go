package progress

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// FileStore keeps each completion set as a small JSON array file under a
// single directory, one file per storage key.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load returns the saved set, or an empty one when the key has never been
// written.
func (s *FileStore) Load(key string) ([]string, error) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FileStore) Save(key string, items []string) error {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), raw, 0o644)
}

// MemoryStore is an in-process Store for tests and ephemeral sessions.
type MemoryStore struct {
	sets map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string][]string)}
}

func (s *MemoryStore) Load(key string) ([]string, error) {
	return append([]string(nil), s.sets[key]...), nil
}

func (s *MemoryStore) Save(key string, items []string) error {
	s.sets[key] = append([]string(nil), items...)
	return nil
}
