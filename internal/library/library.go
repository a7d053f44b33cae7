// Package library loads and serves the photo library export.
//
// The library is a JSON document of albums and photos produced by an external
// exporter. Loading normalizes the raw document: album realms are classified
// from their folder path, album date ranges and locations are derived from
// member photos when the export omits them, and each photo inherits the most
// permissive realm among the albums containing it.
//
// [Store] holds the current snapshot behind a RWMutex so request handlers
// always observe a complete, immutable document; [Watcher] swaps in a new
// snapshot when the export file changes on disk.
package library

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dstrand/photoweb/internal/models"
)

// Load reads and normalizes a library export from the given path.
func Load(path string) (*models.Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library export: %w", err)
	}

	var lib models.Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse library export: %w", err)
	}

	if lib.Albums == nil {
		lib.Albums = map[string]*models.Album{}
	}
	if lib.Photos == nil {
		lib.Photos = map[string]*models.Photo{}
	}

	Normalize(&lib)
	return &lib, nil
}

// Normalize fills in derived fields the export may omit.
func Normalize(lib *models.Library) {
	for _, album := range lib.Albums {
		if album.Realm == 0 {
			album.Realm = models.RealmForPath(album.Path)
		}
		if album.Persons == nil {
			album.Persons = []string{}
		}
		if album.Keywords == nil {
			album.Keywords = []string{}
		}
		if album.Photos == nil {
			album.Photos = []string{}
		}

		members := albumPhotos(lib, album)
		if album.Date == nil {
			album.Date = dateRange(members)
		}
		if album.Location == nil {
			album.Location = centroid(members)
		}
	}

	inheritPhotoRealms(lib)
}

// albumPhotos resolves an album's photo UUIDs against the photo map, skipping
// dangling references.
func albumPhotos(lib *models.Library, album *models.Album) []*models.Photo {
	out := make([]*models.Photo, 0, len(album.Photos))
	for _, uuid := range album.Photos {
		if p, ok := lib.Photos[uuid]; ok {
			out = append(out, p)
		}
	}
	return out
}

// dateRange returns the earliest and latest photo dates, or nil when no photo
// carries a date. Dates are ISO-8601 strings, so lexical comparison orders them.
func dateRange(photos []*models.Photo) *models.AlbumDateRange {
	var start, end string
	for _, p := range photos {
		if p.Date == "" {
			continue
		}
		if start == "" || p.Date < start {
			start = p.Date
		}
		if end == "" || p.Date > end {
			end = p.Date
		}
	}
	if start == "" {
		return nil
	}
	return &models.AlbumDateRange{Start: start, End: end}
}

// centroid returns the midpoint and approximate radius of the photos'
// coordinates, or nil when none are geotagged.
func centroid(photos []*models.Photo) *models.AlbumLocation {
	var (
		minLon, maxLon float64
		minLat, maxLat float64
		found          bool
	)
	for _, p := range photos {
		if p.Longitude == nil || p.Latitude == nil {
			continue
		}
		lon, lat := *p.Longitude, *p.Latitude
		if !found {
			minLon, maxLon, minLat, maxLat = lon, lon, lat, lat
			found = true
			continue
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
	}
	if !found {
		return nil
	}
	radius := maxLon - minLon
	if r := maxLat - minLat; r > radius {
		radius = r
	}
	return &models.AlbumLocation{
		Longitude: (minLon + maxLon) / 2,
		Latitude:  (minLat + maxLat) / 2,
		Radius:    radius,
	}
}

// inheritPhotoRealms assigns each photo the most permissive realm among the
// albums containing it. Photos outside every album stay private.
func inheritPhotoRealms(lib *models.Library) {
	for _, photo := range lib.Photos {
		if photo.Realm == 0 {
			photo.Realm = models.RealmPrivate
		}
	}
	for _, album := range lib.Albums {
		for _, uuid := range album.Photos {
			photo, ok := lib.Photos[uuid]
			if !ok {
				continue
			}
			if album.Realm < photo.Realm {
				photo.Realm = album.Realm
			}
		}
	}
}
