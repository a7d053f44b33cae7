package models

// AlbumDateRange spans the earliest and latest photo dates in an album.
type AlbumDateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// AlbumLocation is the centroid and approximate radius of an album's geotagged photos.
type AlbumLocation struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Radius    float64 `json:"radius"`
}

// Album is one album record from the photo library export.
//
// Path is the album's slash-delimited placement in the source library
// hierarchy (e.g. "Public/Events"); it drives both tree grouping and
// realm classification.
type Album struct {
	UUID      string          `json:"uuid"`
	Title     string          `json:"title"`
	Path      string          `json:"path"`
	Realm     Realm           `json:"realm"`
	Date      *AlbumDateRange `json:"date,omitempty"`
	Location  *AlbumLocation  `json:"location,omitempty"`
	Persons   []string        `json:"persons"`
	Keywords  []string        `json:"keywords"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Photos    []string        `json:"photos"` // ordered photo UUIDs
}

// Library is the full album/photo document served by the photos service.
type Library struct {
	Albums map[string]*Album `json:"albums"`
	Photos map[string]*Photo `json:"photos"`
}

// EmptyLibrary returns a Library with initialized, empty maps.
func EmptyLibrary() *Library {
	return &Library{Albums: map[string]*Album{}, Photos: map[string]*Photo{}}
}
