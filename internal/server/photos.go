package server

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dstrand/photoweb/internal/images"
	"github.com/dstrand/photoweb/internal/library"
)

// PhotosHandler serves scaled photo images and the srcset size map.
//
// Image URLs have the form /api/photos/{uuid}/img{suffix} where the suffix
// selects a rung of the responsive size ladder ("" for the original). Scaled
// variants are cached on disk; the cache key doubles as the ETag so
// revalidation never touches the scaler.
type PhotosHandler struct {
	store  *library.Store
	cache  *images.Cache
	logger *log.Logger
}

func NewPhotosHandler(store *library.Store, cache *images.Cache, logger *log.Logger) *PhotosHandler {
	return &PhotosHandler{store: store, cache: cache, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *PhotosHandler) Routes() []string {
	return []string{
		"GET /api/photos/srcset",
		"GET /api/photos/{uuid}/{variant}",
	}
}

func (h *PhotosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/photos/srcset" {
		h.srcset(w, r)
		return
	}
	h.image(w, r)
}

// srcset maps every size suffix to its pixel width for client srcset construction.
func (h *PhotosHandler) srcset(w http.ResponseWriter, r *http.Request) {
	sizes := map[string]uint{}
	for _, s := range images.Sizes {
		sizes[s.Suffix] = s.Width
	}
	writeJSON(w, http.StatusOK, sizes)
}

func (h *PhotosHandler) image(w http.ResponseWriter, r *http.Request) {
	uuid := r.PathValue("uuid")
	variant := r.PathValue("variant")

	if !strings.HasPrefix(variant, "img") {
		writeError(w, http.StatusBadRequest, "unrecognized image variant")
		return
	}
	size, ok := images.SizeFor(strings.TrimPrefix(variant, "img"))
	if !ok {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("unknown size suffix, expected one of %s", strings.Join(images.ValidSuffixes(), ", ")))
		return
	}

	photo, ok := h.store.Photo(uuid)
	if !ok {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}
	if !photo.Realm.Allows(Roles(r.Context())) {
		writeError(w, http.StatusForbidden, "access denied")
		return
	}

	key := h.cache.Key(uuid, size.Suffix)
	etag := `"` + key + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	data, ok := h.cache.Get(key)
	if !ok {
		src, err := os.ReadFile(photo.FilePath)
		if err != nil {
			h.logger.Error("photo source unreadable", "uuid", uuid, "err", err)
			writeError(w, http.StatusInternalServerError, "photo source unavailable")
			return
		}
		data, err = images.Scale(src, size)
		if err != nil {
			h.logger.Error("photo scaling failed", "uuid", uuid, "err", err)
			writeError(w, http.StatusInternalServerError, "photo scaling failed")
			return
		}
		if err := h.cache.Put(key, data); err != nil {
			h.logger.Warn("cache write failed", "key", key, "err", err)
		}
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
