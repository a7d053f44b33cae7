package ui

import (
	"github.com/dstrand/photoweb/internal/models"
)

// libraryLoadedMsg reports the outcome of an asynchronous library (re)load.
type libraryLoadedMsg struct {
	lib *models.Library
	err error
}
