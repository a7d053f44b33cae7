package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionExpired   = fmt.Errorf("session expired")
	ErrAccessDenied     = fmt.Errorf("access denied")
	ErrAccountDisabled  = fmt.Errorf("account disabled")

	// Library errors
	ErrLibraryNotFound = fmt.Errorf("library export not found")
	ErrAlbumNotFound   = fmt.Errorf("album not found")
	ErrPhotoNotFound   = fmt.Errorf("photo not found")
	ErrDocNotFound     = fmt.Errorf("document not found")
	ErrUserNotFound    = fmt.Errorf("user not found")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
