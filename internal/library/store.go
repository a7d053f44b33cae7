package library

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dstrand/photoweb/internal/models"
)

// Store holds the current library snapshot.
//
// Snapshots are replaced wholesale on reload; readers always get a complete
// document and a failed reload keeps the previous snapshot in place. A fresh
// store starts with an empty library so handlers never observe nil.
type Store struct {
	mu     sync.RWMutex
	lib    *models.Library
	path   string
	logger *log.Logger
}

// NewStore creates a store for the library export at path. The initial
// snapshot is empty until [Store.Reload] succeeds.
func NewStore(path string, logger *log.Logger) *Store {
	return &Store{
		lib:    models.EmptyLibrary(),
		path:   path,
		logger: logger,
	}
}

// Library returns the current snapshot. Callers must treat it as read-only.
func (s *Store) Library() *models.Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lib
}

// Path returns the library export path this store reads from.
func (s *Store) Path() string { return s.path }

// Reload re-reads the export from disk and swaps in the new snapshot.
// On failure the previous snapshot stays current.
func (s *Store) Reload() error {
	lib, err := Load(s.path)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("library reload failed", "path", s.path, "err", err)
		}
		return err
	}

	s.mu.Lock()
	s.lib = lib
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("library loaded", "albums", len(lib.Albums), "photos", len(lib.Photos))
	}
	return nil
}

// Replace swaps in a pre-built library. Used by tests and by callers that
// construct libraries without a backing file.
func (s *Store) Replace(lib *models.Library) {
	if lib == nil {
		lib = models.EmptyLibrary()
	}
	s.mu.Lock()
	s.lib = lib
	s.mu.Unlock()
}

// Album looks up an album by UUID in the current snapshot.
func (s *Store) Album(uuid string) (*models.Album, bool) {
	lib := s.Library()
	a, ok := lib.Albums[uuid]
	return a, ok
}

// Photo looks up a photo by UUID in the current snapshot.
func (s *Store) Photo(uuid string) (*models.Photo, bool) {
	lib := s.Library()
	p, ok := lib.Photos[uuid]
	return p, ok
}
