// Package docs lists and serves documentation files from a directory tree.
//
// The top-level folder name classifies each document's realm the same way
// album paths do, so "Public/manual.md" is world-readable while
// "Private/notes.md" requires the private role.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/shared"
)

// Service reads documentation folders rooted at a configured directory.
type Service struct {
	root string
}

// NewService creates a docs service rooted at the given directory.
func NewService(root string) *Service {
	return &Service{root: root}
}

// File is one document inside a folder.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Folder is one top-level documentation folder and its files.
type Folder struct {
	Name  string       `json:"name"`
	Realm models.Realm `json:"realm"`
	Files []File       `json:"files"`
}

// List returns every top-level folder with its files, sorted by name.
// Hidden entries and loose files at the root are skipped.
func (s *Service) List() ([]Folder, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs root: %w", err)
	}

	var folders []Folder
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		files, err := s.listFiles(entry.Name())
		if err != nil {
			return nil, err
		}

		folders = append(folders, Folder{
			Name:  entry.Name(),
			Realm: models.RealmForPath(entry.Name()),
			Files: files,
		})
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders, nil
}

// Resolve maps a folder-relative document path to its absolute location and
// realm. Paths escaping the docs root are rejected as [shared.ErrInvalidInput];
// missing documents are [shared.ErrDocNotFound].
func (s *Service) Resolve(rel string) (string, models.Realm, error) {
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return "", 0, fmt.Errorf("%w: empty document path", shared.ErrInvalidInput)
	}

	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", 0, fmt.Errorf("%w: document path escapes docs root", shared.ErrInvalidInput)
	}

	abs := filepath.Join(s.root, clean)
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", 0, fmt.Errorf("%w: %s", shared.ErrDocNotFound, rel)
	}

	realm := models.RealmForPath(filepath.ToSlash(clean))
	return abs, realm, nil
}

func (s *Service) listFiles(folder string) ([]File, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, folder))
	if err != nil {
		return nil, fmt.Errorf("failed to read docs folder %s: %w", folder, err)
	}

	files := []File{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		files = append(files, File{Name: entry.Name(), Size: info.Size()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
