package docs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/shared"
)

func testRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range map[string]string{
		"Public/manual.md":   "# Manual",
		"Public/faq.md":      "# FAQ",
		"Internal/ops.md":    "# Ops",
		"Private/notes.md":   "# Notes",
		".hidden/secret.md":  "hidden",
		"Public/.draft.md":   "draft",
		"Public/sub/deep.md": "nested",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
	return root
}

func TestList(t *testing.T) {
	svc := NewService(testRoot(t))

	folders, err := svc.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(folders) != 3 {
		t.Fatalf("expected 3 folders, got %d", len(folders))
	}

	byName := map[string]Folder{}
	for _, f := range folders {
		byName[f.Name] = f
	}

	if byName["Public"].Realm != models.RealmPublic {
		t.Errorf("Public folder should be public, got %s", byName["Public"].Realm)
	}
	if byName["Internal"].Realm != models.RealmProtected {
		t.Errorf("Internal folder should default to protected, got %s", byName["Internal"].Realm)
	}
	if byName["Private"].Realm != models.RealmPrivate {
		t.Errorf("Private folder should be private, got %s", byName["Private"].Realm)
	}

	// dotfiles and subdirectories are not listed
	files := byName["Public"].Files
	if len(files) != 2 {
		t.Fatalf("expected 2 files in Public, got %d", len(files))
	}
	if files[0].Name != "faq.md" || files[1].Name != "manual.md" {
		t.Errorf("expected sorted file names, got %v", files)
	}
	if files[1].Size != int64(len("# Manual")) {
		t.Errorf("expected manual.md size %d, got %d", len("# Manual"), files[1].Size)
	}

	// sorted folder order
	if folders[0].Name != "Internal" || folders[1].Name != "Private" || folders[2].Name != "Public" {
		t.Errorf("expected sorted folders, got %v", folders)
	}
}

func TestListMissingRoot(t *testing.T) {
	svc := NewService("/does/not/exist")
	if _, err := svc.List(); err == nil {
		t.Error("expected error for missing docs root")
	}
}

func TestResolve(t *testing.T) {
	svc := NewService(testRoot(t))

	t.Run("KnownDocument", func(t *testing.T) {
		abs, realm, err := svc.Resolve("Public/manual.md")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if realm != models.RealmPublic {
			t.Errorf("expected public realm, got %s", realm)
		}
		if _, err := os.Stat(abs); err != nil {
			t.Errorf("resolved path should exist: %v", err)
		}
	})

	t.Run("NestedDocument", func(t *testing.T) {
		_, realm, err := svc.Resolve("Public/sub/deep.md")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if realm != models.RealmPublic {
			t.Errorf("nested document inherits the top folder realm, got %s", realm)
		}
	})

	t.Run("MissingDocument", func(t *testing.T) {
		if _, _, err := svc.Resolve("Public/nope.md"); !errors.Is(err, shared.ErrDocNotFound) {
			t.Errorf("expected ErrDocNotFound, got %v", err)
		}
	})

	t.Run("DirectoryIsNotADocument", func(t *testing.T) {
		if _, _, err := svc.Resolve("Public"); !errors.Is(err, shared.ErrDocNotFound) {
			t.Errorf("expected ErrDocNotFound for a directory, got %v", err)
		}
	})

	t.Run("TraversalRejected", func(t *testing.T) {
		for _, rel := range []string{"../etc/passwd", "Public/../../etc/passwd", ""} {
			if _, _, err := svc.Resolve(rel); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("Resolve(%q) should be rejected, got %v", rel, err)
			}
		}
	})
}
