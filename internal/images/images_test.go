package images

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/dstrand/photoweb/internal/models"
)

// testJPEG encodes a width x height gray image as JPEG.
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode scaled image: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestSizeFor(t *testing.T) {
	t.Run("KnownSuffixes", func(t *testing.T) {
		for _, s := range Sizes {
			got, ok := SizeFor(s.Suffix)
			if !ok || got.Width != s.Width {
				t.Errorf("SizeFor(%q) = %+v, %v", s.Suffix, got, ok)
			}
		}
	})

	t.Run("EmptySuffixIsOriginal", func(t *testing.T) {
		s, ok := SizeFor("")
		if !ok || s.Width != 0 {
			t.Errorf("empty suffix should mean original, got %+v, %v", s, ok)
		}
	})

	t.Run("UnknownSuffix", func(t *testing.T) {
		if _, ok := SizeFor("-huge"); ok {
			t.Error("unknown suffix should not resolve")
		}
	})
}

func TestScale(t *testing.T) {
	t.Run("Downscales", func(t *testing.T) {
		src := testJPEG(t, 1600, 1200)

		out, err := Scale(src, Size{Suffix: "-sm", Width: 480, Quality: 70})
		if err != nil {
			t.Fatalf("scale failed: %v", err)
		}

		w, h := decodeSize(t, out)
		if w != 480 {
			t.Errorf("expected width 480, got %d", w)
		}
		if h != 360 {
			t.Errorf("expected aspect-preserving height 360, got %d", h)
		}
	})

	t.Run("NeverUpscales", func(t *testing.T) {
		src := testJPEG(t, 300, 200)

		out, err := Scale(src, Size{Suffix: "-lg", Width: 1024, Quality: 80})
		if err != nil {
			t.Fatalf("scale failed: %v", err)
		}

		w, _ := decodeSize(t, out)
		if w != 300 {
			t.Errorf("image should keep original width 300, got %d", w)
		}
	})

	t.Run("ZeroWidthKeepsDimensions", func(t *testing.T) {
		src := testJPEG(t, 640, 480)

		out, err := Scale(src, Size{Quality: 92})
		if err != nil {
			t.Fatalf("scale failed: %v", err)
		}

		w, h := decodeSize(t, out)
		if w != 640 || h != 480 {
			t.Errorf("expected 640x480, got %dx%d", w, h)
		}
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		if _, err := Scale([]byte("not an image"), Size{Width: 480, Quality: 70}); err == nil {
			t.Error("scaling garbage should fail")
		}
	})
}

func TestCache(t *testing.T) {
	t.Run("PutGet", func(t *testing.T) {
		cache, err := NewCache(t.TempDir())
		if err != nil {
			t.Fatalf("failed to create cache: %v", err)
		}

		key := cache.Key("ph-1", "-md")
		if cache.Has(key) {
			t.Error("fresh cache should miss")
		}

		if err := cache.Put(key, []byte("jpeg bytes")); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		data, ok := cache.Get(key)
		if !ok || string(data) != "jpeg bytes" {
			t.Errorf("get returned %q, %v", data, ok)
		}
	})

	t.Run("Stats", func(t *testing.T) {
		cache, err := NewCache(t.TempDir())
		if err != nil {
			t.Fatalf("failed to create cache: %v", err)
		}

		cache.Put(cache.Key("a", "-sm"), []byte("12345"))
		cache.Put(cache.Key("b", "-sm"), []byte("123"))

		stats, err := cache.Stats()
		if err != nil {
			t.Fatalf("stats failed: %v", err)
		}
		if stats.Entries != 2 {
			t.Errorf("expected 2 entries, got %d", stats.Entries)
		}
		if stats.TotalBytes != 8 {
			t.Errorf("expected 8 bytes, got %d", stats.TotalBytes)
		}
	})
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{1572864, "1.5 MB"},
		{3221225472, "3.0 GB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.n); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestPregenerate(t *testing.T) {
	t.Run("WarmsAllSizes", func(t *testing.T) {
		dir := t.TempDir()
		photoPath := filepath.Join(dir, "ph-1.jpg")
		if err := os.WriteFile(photoPath, testJPEG(t, 800, 600), 0644); err != nil {
			t.Fatalf("failed to write photo: %v", err)
		}

		lib := &models.Library{
			Albums: map[string]*models.Album{},
			Photos: map[string]*models.Photo{
				"ph-1": {UUID: "ph-1", FilePath: photoPath},
			},
		}

		cache, err := NewCache(filepath.Join(dir, "cache"))
		if err != nil {
			t.Fatalf("failed to create cache: %v", err)
		}

		result, err := Pregenerate(context.Background(), lib, cache, 2, nil)
		if err != nil {
			t.Fatalf("pregenerate failed: %v", err)
		}

		if result.Photos != 1 {
			t.Errorf("expected 1 photo processed, got %d", result.Photos)
		}
		if result.Written != len(Sizes)+1 { // ladder plus original
			t.Errorf("expected %d entries written, got %d", len(Sizes)+1, result.Written)
		}

		if !cache.Has(cache.Key("ph-1", "-sm")) || !cache.Has(cache.Key("ph-1", "")) {
			t.Error("expected cache entries for ladder and original")
		}
	})

	t.Run("SkipsExistingEntries", func(t *testing.T) {
		dir := t.TempDir()
		photoPath := filepath.Join(dir, "ph-1.jpg")
		if err := os.WriteFile(photoPath, testJPEG(t, 800, 600), 0644); err != nil {
			t.Fatalf("failed to write photo: %v", err)
		}

		lib := &models.Library{
			Photos: map[string]*models.Photo{
				"ph-1": {UUID: "ph-1", FilePath: photoPath},
			},
		}

		cache, err := NewCache(filepath.Join(dir, "cache"))
		if err != nil {
			t.Fatalf("failed to create cache: %v", err)
		}

		if _, err := Pregenerate(context.Background(), lib, cache, 2, nil); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		result, err := Pregenerate(context.Background(), lib, cache, 2, nil)
		if err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		if result.Written != 0 {
			t.Errorf("second run should write nothing, wrote %d", result.Written)
		}
		if result.Skipped != len(Sizes)+1 {
			t.Errorf("expected %d skipped, got %d", len(Sizes)+1, result.Skipped)
		}
	})

	t.Run("CountsUnreadablePhotos", func(t *testing.T) {
		lib := &models.Library{
			Photos: map[string]*models.Photo{
				"ph-x": {UUID: "ph-x", FilePath: "/does/not/exist.jpg"},
			},
		}

		cache, err := NewCache(t.TempDir())
		if err != nil {
			t.Fatalf("failed to create cache: %v", err)
		}

		result, err := Pregenerate(context.Background(), lib, cache, 1, nil)
		if err != nil {
			t.Fatalf("pregenerate failed: %v", err)
		}
		if result.Failed != 1 {
			t.Errorf("expected 1 failed photo, got %d", result.Failed)
		}
	})
}
