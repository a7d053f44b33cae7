package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/shared"
)

type contextKey int

const (
	rolesKey contextKey = iota
	userKey
	tokenKey
)

// WithRoles returns a context carrying the caller's resolved roles.
func WithRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, rolesKey, roles)
}

// Roles returns the caller's roles, defaulting to public when none were resolved.
func Roles(ctx context.Context) []string {
	if roles, ok := ctx.Value(rolesKey).([]string); ok && len(roles) > 0 {
		return roles
	}
	return []string{"public"}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the authenticated user, or nil for anonymous callers.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

func withToken(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, tokenKey, raw)
}

func tokenFrom(ctx context.Context) string {
	raw, _ := ctx.Value(tokenKey).(string)
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFromErr maps domain errors onto HTTP statuses.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotAuthenticated), errors.Is(err, shared.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrAccessDenied), errors.Is(err, shared.ErrAccountDisabled):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrAlbumNotFound),
		errors.Is(err, shared.ErrPhotoNotFound),
		errors.Is(err, shared.ErrDocNotFound),
		errors.Is(err, shared.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
