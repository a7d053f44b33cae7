package authz

import (
	"fmt"
	"strings"

	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/shared"
)

// CheckResource authorizes access to the album or photo named in a forwarded URI.
//
// Recognized URIs have the shape /photos/api/{albums|photos}/{uuid}[/...];
// access is granted when the resource's realm appears in the caller's roles.
// Errors map onto forward-auth statuses: [shared.ErrInvalidInput] → 400,
// [shared.ErrAlbumNotFound] and [shared.ErrPhotoNotFound] → 404,
// [shared.ErrAccessDenied] → 403.
func CheckResource(lib *models.Library, uri string, roles []string) error {
	segments := splitURI(uri)
	if len(segments) < 4 {
		return fmt.Errorf("%w: unrecognized uri %q", shared.ErrInvalidInput, uri)
	}

	kind, uuid := segments[2], segments[3]

	switch kind {
	case "albums":
		album, ok := lib.Albums[uuid]
		if !ok {
			return fmt.Errorf("%w: %s", shared.ErrAlbumNotFound, uuid)
		}
		if album.Realm.Allows(roles) {
			return nil
		}
	case "photos":
		photo, ok := lib.Photos[uuid]
		if !ok {
			return fmt.Errorf("%w: %s", shared.ErrPhotoNotFound, uuid)
		}
		if photo.Realm.Allows(roles) {
			return nil
		}
	default:
		return fmt.Errorf("%w: unrecognized resource kind %q", shared.ErrInvalidInput, kind)
	}

	return fmt.Errorf("%w: %s for roles %v", shared.ErrAccessDenied, uri, roles)
}

// splitURI splits a URI path into non-empty segments, dropping any query string.
func splitURI(uri string) []string {
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		uri = uri[:i]
	}
	var segments []string
	for _, part := range strings.Split(uri, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
