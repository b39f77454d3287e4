// Package store persists blog data in a single YAML file used as a local
// key/value store. Each key holds one JSON-encoded value, the same shape the
// browser's local storage gives a web client, so a store file can be filled
// from an exported storage dump.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"

	"github.com/alnah/go-blogmd/internal/fileutil"
	"github.com/alnah/go-blogmd/internal/yamlutil"
)

// Sentinel errors for store operations.
var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrCorruptValue = errors.New("corrupt value")
	ErrCorruptStore = errors.New("corrupt store file")
	ErrEmptyKey     = errors.New("key cannot be empty")
)

// MaxStoreSize bounds the store file read at Open (32MB).
const MaxStoreSize = 32 << 20

// Store is a file-backed key/value store. Safe for concurrent use within
// one process; writers in other processes are not coordinated.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads the store at path. A missing file yields an empty store; the
// file is created on the first Set.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}}

	data, err := os.ReadFile(path) // #nosec G304 -- user-chosen store path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading store %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}

	if err := yamlutil.Unmarshal(data, &s.values, yamlutil.MaxSize(MaxStoreSize)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, path, err)
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get decodes the value stored under key into dst.
func (s *Store) Get(key string, dst any) error {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err := yamlutil.Unmarshal([]byte(raw), dst, yamlutil.MaxSize(MaxStoreSize)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptValue, key, err)
	}
	return nil
}

// Raw returns the encoded value under key.
func (s *Store) Raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.values[key]
	return raw, ok
}

// Set encodes v as JSON, stores it under key and writes the file.
func (s *Store) Set(key string, v any) error {
	if key == "" {
		return ErrEmptyKey
	}
	encoded, err := yamlutil.MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = trimNewline(string(encoded))
	if err := s.flushLocked(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	if !had {
		return nil
	}
	delete(s.values, key)
	if err := s.flushLocked(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *Store) flushLocked() error {
	data, err := yamlutil.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, fileutil.FilePermissions); err != nil {
		return fmt.Errorf("writing store %s: %w", s.path, err)
	}
	return nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
