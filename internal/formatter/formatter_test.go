package formatter

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dstrand/photoweb/internal/albums"
	"github.com/dstrand/photoweb/internal/models"
	tu "github.com/dstrand/photoweb/internal/testing"
)

func sampleAlbums(t *testing.T) (*models.Library, []*models.Album, *albums.TreeNode) {
	t.Helper()
	lib := tu.SampleLibrary()
	tree := albums.BuildTree(lib.Albums)
	return lib, tree.Flatten(), tree
}

func TestExportToCSV(t *testing.T) {
	t.Run("Header and Rows", func(t *testing.T) {
		_, list, _ := sampleAlbums(t)

		data, err := ExportToCSV(list)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse generated CSV: %v", err)
		}

		if len(records) != len(list)+1 {
			t.Fatalf("expected %d records, got %d", len(list)+1, len(records))
		}
		if records[0][0] != "UUID" || records[0][3] != "Realm" {
			t.Errorf("unexpected header: %v", records[0])
		}

		for i, album := range list {
			row := records[i+1]
			if row[0] != album.UUID || row[1] != album.Title {
				t.Errorf("row %d mismatch: %v", i+1, row)
			}
			if row[3] != album.Realm.String() {
				t.Errorf("expected realm %s, got %s", album.Realm, row[3])
			}
		}
	})

	t.Run("Empty List", func(t *testing.T) {
		data, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 1 {
			t.Errorf("expected header only, got %d lines", len(lines))
		}
	})

	t.Run("Date Range Columns", func(t *testing.T) {
		list := []*models.Album{{
			UUID:  "al-1",
			Title: "Trip",
			Path:  "Public/Trip",
			Realm: models.RealmPublic,
			Date:  &models.AlbumDateRange{Start: "2024-06-01", End: "2024-06-14"},
		}}

		data, err := ExportToCSV(list)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		records, _ := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if records[1][5] != "2024-06-01" || records[1][6] != "2024-06-14" {
			t.Errorf("expected date range columns, got %v", records[1])
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	_, _, tree := sampleAlbums(t)

	data, err := ExportToMarkdown(tree)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	md := string(data)

	if !strings.HasPrefix(md, "# Albums\n") {
		t.Error("expected Markdown title")
	}
	if !strings.Contains(md, "**Total**: 3") {
		t.Errorf("expected album total, got:\n%s", md)
	}
	if !strings.Contains(md, "- Public/\n") {
		t.Errorf("expected folder entry, got:\n%s", md)
	}
	if !strings.Contains(md, "**Summer 2024** (2 photos, public)") {
		t.Errorf("expected album entry, got:\n%s", md)
	}
	if !strings.Contains(md, "**Hiking** (1 photo, protected)") {
		t.Errorf("expected singular photo count, got:\n%s", md)
	}

	// nested folders are indented under their parent
	if !strings.Contains(md, "  - 2024/\n") {
		t.Errorf("expected indented child folder, got:\n%s", md)
	}
}

func TestExportToText(t *testing.T) {
	_, list, _ := sampleAlbums(t)

	data, err := ExportToText(list)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "Albums: 3") {
		t.Errorf("expected album count, got:\n%s", text)
	}
	if !strings.Contains(text, "1. ") {
		t.Errorf("expected numbered entries, got:\n%s", text)
	}
	if !strings.Contains(text, "[Public/2024/Summer]") {
		t.Errorf("expected album path, got:\n%s", text)
	}
}

func TestToMetadataJSON(t *testing.T) {
	album := models.Album{
		UUID:   "al-1",
		Title:  "Trip",
		Path:   "Public/Trip",
		Realm:  models.RealmPublic,
		Photos: []string{"ph-1"},
	}

	data, err := ToMetadataJSON(album)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to parse metadata JSON: %v", err)
	}
	if decoded["uuid"] != "al-1" {
		t.Errorf("expected uuid 'al-1', got %v", decoded["uuid"])
	}
	if decoded["realm"] != "public" {
		t.Errorf("expected realm name 'public', got %v", decoded["realm"])
	}
}

func TestWriteExports(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		_, list, _ := sampleAlbums(t)
		path := filepath.Join(t.TempDir(), "out.csv")

		written, err := WriteCSVExport(list, path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if written != path {
			t.Errorf("expected path %s, got %s", path, written)
		}
		tu.AssertFileExists(t, path)
	})

	t.Run("Markdown", func(t *testing.T) {
		_, _, tree := sampleAlbums(t)
		path := filepath.Join(t.TempDir(), "out.md")

		if _, err := WriteMarkdownExport(tree, path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "# Albums") {
			t.Error("expected Markdown content in file")
		}
	})

	t.Run("Text", func(t *testing.T) {
		_, list, _ := sampleAlbums(t)
		path := filepath.Join(t.TempDir(), "out.txt")

		if _, err := WriteTextExport(list, path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, path)
	})

	t.Run("Unwritable Path", func(t *testing.T) {
		_, list, _ := sampleAlbums(t)

		if _, err := WriteCSVExport(list, "/does/not/exist/out.csv"); err == nil {
			t.Error("expected error for unwritable path")
		}
	})
}
