package models

// Photo is one photo record from the photo library export.
//
// FilePath locates the image on disk. It is present in the library export but
// must never reach API clients; handlers serve [Photo.Public] copies instead.
type Photo struct {
	UUID        string   `json:"uuid"`
	Date        string   `json:"date"`
	Realm       Realm    `json:"realm"`
	MimeType    string   `json:"mime_type"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Persons     []string `json:"persons,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	Place       string   `json:"place,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	UTI         string   `json:"uti,omitempty"`

	FilePath string `json:"path,omitempty"`
}

// Public returns a copy of the photo with the server-side file path stripped.
func (p *Photo) Public() Photo {
	clean := *p
	clean.FilePath = ""
	return clean
}
