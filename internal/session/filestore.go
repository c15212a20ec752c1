package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore implements Repository with one pretty-printed JSON file per
// session under a data directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a filesystem-backed session repository rooted at
// dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path returns the JSON file path for a session id.
func (fs *FileStore) path(id string) string {
	return filepath.Join(fs.dir, id+".json")
}

// Create persists a new session, failing if one already exists.
func (fs *FileStore) Create(s *Session) error {
	if _, err := os.Stat(fs.path(s.ID)); err == nil {
		return fmt.Errorf("session %q already exists", s.ID)
	}
	return fs.write(s)
}

// Load reads a session by id.
func (fs *FileStore) Load(id string) (*Session, error) {
	data, err := os.ReadFile(fs.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("session %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading session %q: %w", id, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session %q: %w", id, err)
	}
	return &s, nil
}

// Save overwrites the stored session. Last write wins.
func (fs *FileStore) Save(s *Session) error {
	return fs.write(s)
}

// List returns summaries of all sessions, most recently updated first.
func (fs *FileStore) List() ([]Summary, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("reading session directory: %w", err)
	}

	var result []Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		s, err := fs.Load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue // skip unreadable sessions
		}
		result = append(result, summarize(s))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt > result[j].UpdatedAt
	})
	return result, nil
}

// Close is a no-op for the file store.
func (fs *FileStore) Close() error { return nil }

// write marshals and writes a session to its JSON file.
func (fs *FileStore) write(s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session %q: %w", s.ID, err)
	}
	return os.WriteFile(fs.path(s.ID), data, 0o644)
}
