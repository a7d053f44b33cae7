package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/repositories"
	"github.com/dstrand/photoweb/internal/shared"
)

// UsersHandler serves the admin-only user management endpoints.
type UsersHandler struct {
	users *repositories.UserRepository
}

func NewUsersHandler(users *repositories.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// Routes returns the HTTP routes this handler serves.
func (h *UsersHandler) Routes() []string {
	return []string{
		"GET /api/users",
		"POST /api/users",
		"GET /api/users/{email}",
		"PUT /api/users/{email}",
		"DELETE /api/users/{email}",
	}
}

// userPayload is the request body for creating and updating accounts.
type userPayload struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Roles   string `json:"roles"`
	Enabled *bool  `json:"enabled"`
	Picture string `json:"picture"`
}

// userRecord is the admin-facing account representation.
type userRecord struct {
	Sequence int    `json:"sequence"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Roles    string `json:"roles"`
	Enabled  bool   `json:"enabled"`
	Picture  string `json:"picture,omitempty"`
}

func toRecord(u *models.User) userRecord {
	return userRecord{
		Sequence: u.Sequence(),
		Email:    u.Email(),
		Name:     u.Name(),
		Roles:    u.Roles(),
		Enabled:  u.Enabled(),
		Picture:  u.Picture(),
	}
}

func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller := UserFrom(r.Context())
	if caller == nil || !caller.HasRole("admin") {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	email := r.PathValue("email")
	switch {
	case email == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case email == "" && r.Method == http.MethodPost:
		h.create(w, r)
	case r.Method == http.MethodGet:
		h.get(w, r, email)
	case r.Method == http.MethodPut:
		h.update(w, r, email)
	case r.Method == http.MethodDelete:
		h.delete(w, r, email)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(map[string]any{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	records := []userRecord{}
	for _, u := range users {
		records = append(records, toRecord(u))
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *UsersHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user := models.NewUser(0, payload.Email, payload.Name)
	if payload.Roles != "" {
		user.SetRoles(payload.Roles)
	}
	if payload.Enabled != nil {
		user.SetEnabled(*payload.Enabled)
	}
	user.SetPicture(payload.Picture)

	if err := h.users.Create(user); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toRecord(user))
}

func (h *UsersHandler) get(w http.ResponseWriter, r *http.Request, email string) {
	user, err := h.users.GetByEmail(email)
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toRecord(user))
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request, email string) {
	user, err := h.users.GetByEmail(email)
	if err != nil {
		writeError(w, statusFromErr(err), err.Error())
		return
	}

	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if payload.Name != "" {
		user.SetName(payload.Name)
	}
	if payload.Roles != "" {
		user.SetRoles(payload.Roles)
	}
	if payload.Enabled != nil {
		user.SetEnabled(*payload.Enabled)
	}
	if payload.Picture != "" {
		user.SetPicture(payload.Picture)
	}

	if err := h.users.Update(user); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toRecord(user))
}

func (h *UsersHandler) delete(w http.ResponseWriter, r *http.Request, email string) {
	user, err := h.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.users.Delete(user.ID()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
