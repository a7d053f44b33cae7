package server

import (
	"net/http"

	"github.com/dstrand/photoweb/internal/docs"
)

// DocsHandler serves the documentation folder listing and individual files.
type DocsHandler struct {
	svc *docs.Service
}

func NewDocsHandler(svc *docs.Service) *DocsHandler {
	return &DocsHandler{svc: svc}
}

// Routes returns the HTTP routes this handler serves.
func (h *DocsHandler) Routes() []string {
	return []string{
		"GET /api/docs",
		"GET /api/docs/file",
	}
}

func (h *DocsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/docs/file" {
		h.file(w, r)
		return
	}
	h.list(w, r)
}

// list returns the folders visible to the caller with their files.
func (h *DocsHandler) list(w http.ResponseWriter, r *http.Request) {
	folders, err := h.svc.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	roles := Roles(r.Context())
	visible := []docs.Folder{}
	for _, folder := range folders {
		if folder.Realm.Allows(roles) {
			visible = append(visible, folder)
		}
	}

	writeJSON(w, http.StatusOK, visible)
}

// file serves one document named by the path query parameter.
func (h *DocsHandler) file(w http.ResponseWriter, r *http.Request) {
	rel := r.URL.Query().Get("path")

	abs, realm, err := h.svc.Resolve(rel)
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}
	if !realm.Allows(Roles(r.Context())) {
		writeError(w, http.StatusForbidden, "access denied")
		return
	}

	http.ServeFile(w, r, abs)
}
