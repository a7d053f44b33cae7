package server

import (
	"net/http"

	"github.com/dstrand/photoweb/internal/library"
	"github.com/dstrand/photoweb/internal/models"
)

// AlbumsHandler serves the album index and album detail endpoints.
//
// Both endpoints filter by the caller's roles: the index contains only albums
// in visible realms, and requesting a hidden album yields 403.
type AlbumsHandler struct {
	store *library.Store
}

func NewAlbumsHandler(store *library.Store) *AlbumsHandler {
	return &AlbumsHandler{store: store}
}

// Routes returns the HTTP routes this handler serves.
func (h *AlbumsHandler) Routes() []string {
	return []string{
		"GET /api/albums",
		"GET /api/albums/{uuid}",
	}
}

func (h *AlbumsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if uuid := r.PathValue("uuid"); uuid != "" {
		h.detail(w, r, uuid)
		return
	}
	h.index(w, r)
}

// index returns every album the caller may see, keyed by UUID.
func (h *AlbumsHandler) index(w http.ResponseWriter, r *http.Request) {
	roles := Roles(r.Context())

	visible := map[string]*models.Album{}
	for uuid, album := range h.store.Library().Albums {
		if album.Realm.Allows(roles) {
			visible[uuid] = album
		}
	}

	writeJSON(w, http.StatusOK, visible)
}

// albumDetail is an album plus the metadata of its photos, file paths stripped.
type albumDetail struct {
	models.Album
	PhotoDetails []models.Photo `json:"photo_details"`
}

func (h *AlbumsHandler) detail(w http.ResponseWriter, r *http.Request, uuid string) {
	album, ok := h.store.Album(uuid)
	if !ok {
		writeError(w, http.StatusNotFound, "album not found")
		return
	}

	roles := Roles(r.Context())
	if !album.Realm.Allows(roles) {
		writeError(w, http.StatusForbidden, "access denied")
		return
	}

	detail := albumDetail{Album: *album, PhotoDetails: []models.Photo{}}
	for _, photoUUID := range album.Photos {
		photo, ok := h.store.Photo(photoUUID)
		if !ok || !photo.Realm.Allows(roles) {
			continue
		}
		detail.PhotoDetails = append(detail.PhotoDetails, photo.Public())
	}

	writeJSON(w, http.StatusOK, detail)
}
