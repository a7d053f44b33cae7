// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/dstrand/photoweb/internal/models"
)

// SampleLibrary builds a small fixture library spanning all three realms.
func SampleLibrary() *models.Library {
	lib := models.EmptyLibrary()

	lib.Albums["al-public"] = &models.Album{
		UUID:   "al-public",
		Title:  "Summer 2024",
		Path:   "Public/2024/Summer",
		Realm:  models.RealmPublic,
		Photos: []string{"ph-1", "ph-2"},
	}
	lib.Albums["al-protected"] = &models.Album{
		UUID:   "al-protected",
		Title:  "Hiking",
		Path:   "Trips/Hiking",
		Realm:  models.RealmProtected,
		Photos: []string{"ph-3"},
	}
	lib.Albums["al-private"] = &models.Album{
		UUID:   "al-private",
		Title:  "Family",
		Path:   "Private/Family",
		Realm:  models.RealmPrivate,
		Photos: []string{"ph-4"},
	}

	lib.Photos["ph-1"] = &models.Photo{UUID: "ph-1", Title: "Beach", MimeType: "image/jpeg", Realm: models.RealmPublic, FilePath: "/photos/beach.jpg"}
	lib.Photos["ph-2"] = &models.Photo{UUID: "ph-2", Title: "Sunset", MimeType: "image/jpeg", Realm: models.RealmPublic, FilePath: "/photos/sunset.jpg"}
	lib.Photos["ph-3"] = &models.Photo{UUID: "ph-3", Title: "Trail", MimeType: "image/jpeg", Realm: models.RealmProtected, FilePath: "/photos/trail.jpg"}
	lib.Photos["ph-4"] = &models.Photo{UUID: "ph-4", Title: "Dinner", MimeType: "image/jpeg", Realm: models.RealmPrivate, FilePath: "/photos/dinner.jpg"}

	return lib
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
