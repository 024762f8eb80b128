// Package store persists the named JSON documents the UI reads and writes.
// Each document lives in its own file and is guarded by its own lock.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"facekey/internal/logging"
)

// Logical document names.
const (
	Settings = "settings"
	Profiles = "profiles"
)

// EmptyDocument is returned when a document has never been written.
const EmptyDocument = "{}"

// WriteError reports a failed Set. Other documents are unaffected.
type WriteError struct {
	Name string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s document to %s: %v", e.Name, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Store is one file-backed document. Every Get reads the file and every Set
// writes it through; nothing is cached.
type Store struct {
	mu   sync.Mutex
	name string
	dir  string
	path string
	log  zerolog.Logger
}

// New creates the store for document name under dir. The path is fixed for
// the lifetime of the Store; neither the directory nor the file is created
// until the first Set.
func New(dir, name string) *Store {
	return &Store{
		name: name,
		dir:  dir,
		path: filepath.Join(dir, name+".json"),
		log:  logging.GetLogger("store").With().Str("document", name).Logger(),
	}
}

// Name returns the logical document name.
func (s *Store) Name() string {
	return s.name
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the document text. A missing or unreadable file reads as
// EmptyDocument.
func (s *Store) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return EmptyDocument
	}
	if err != nil {
		// Unreadable data is reported to the caller as "no data yet".
		s.log.Warn().Err(err).Str("path", s.path).Msg("Failed to read document, using empty document")
		return EmptyDocument
	}
	return string(data)
}

// Set replaces the document with data.
func (s *Store) Set(data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &WriteError{Name: s.name, Path: s.path, Err: err}
	}

	s.log.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("Saving document")
	if err := os.WriteFile(s.path, []byte(data), 0644); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("Failed to save document")
		return &WriteError{Name: s.name, Path: s.path, Err: err}
	}
	return nil
}
