package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache is a flat on-disk cache of scaled images.
//
// Entries are named {uuid}{suffix}.jpg; the name doubles as the ETag served
// to clients, so a cache hit short-circuits both scaling and transfer.
type Cache struct {
	dir string
}

// NewCache creates the cache directory if needed and returns a cache over it.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key returns the cache key (and ETag) for a photo/size combination.
func (c *Cache) Key(uuid, suffix string) string {
	return uuid + suffix + ".jpg"
}

// Get returns the cached bytes for the key, or ok=false on a miss.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Has reports whether the key is cached without reading it.
func (c *Cache) Has(key string) bool {
	_, err := os.Stat(filepath.Join(c.dir, key))
	return err == nil
}

// Put stores scaled bytes under the key. Writes go through a temp file and
// rename so concurrent readers never see partial entries.
func (c *Cache) Put(key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish cache entry: %w", err)
	}
	return nil
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries    int   `json:"entries"`
	TotalBytes int64 `json:"total_bytes"`
}

// Stats walks the cache directory and reports entry count and total size.
func (c *Cache) Stats() (Stats, error) {
	var stats Stats
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return stats, fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jpg") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

// FormatBytes renders a byte count human-readably (e.g. "1.5 MB").
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
