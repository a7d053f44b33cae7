package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/dstrand/photoweb/internal/authz"
	"github.com/dstrand/photoweb/internal/library"
	"github.com/dstrand/photoweb/internal/shared"
)

// AuthorizeHandler answers forward-auth subrequests from the reverse proxy.
//
// The proxy sends the original request's URI in X-Forwarded-Uri; the response
// status alone carries the decision (200 allow, 400/403/404 deny). URIs naming
// an album or photo are decided by the resource's realm; every other URI is
// decided by the CSV rule table, which denies by default.
type AuthorizeHandler struct {
	store  *library.Store
	rules  *authz.Manager
	logger *log.Logger
}

func NewAuthorizeHandler(store *library.Store, rules *authz.Manager, logger *log.Logger) *AuthorizeHandler {
	return &AuthorizeHandler{store: store, rules: rules, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthorizeHandler) Routes() []string {
	return []string{"GET /authorize"}
}

func (h *AuthorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uri := r.Header.Get("X-Forwarded-Uri")
	if uri == "" {
		uri = r.URL.Query().Get("uri")
	}
	if uri == "" {
		writeError(w, http.StatusBadRequest, "missing forwarded uri")
		return
	}

	roles := Roles(r.Context())

	err := authz.CheckResource(h.store.Library(), uri, roles)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, shared.ErrInvalidInput):
		// not an album or photo URI, consult the rule table
		if h.rules != nil && h.rules.IsAuthorized(uri, roles) {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.logger.Debug("authorization denied by rules", "uri", uri, "roles", roles)
		writeError(w, http.StatusForbidden, "access denied")
	default:
		h.logger.Debug("authorization denied", "uri", uri, "roles", roles, "err", err)
		writeError(w, statusFromErr(err), err.Error())
	}
}
