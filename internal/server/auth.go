package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/repositories"
	"github.com/dstrand/photoweb/internal/services"
	"github.com/dstrand/photoweb/internal/shared"
)

// Claims is the identity asserted by a verified login token.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verifier validates an identity provider's token and extracts the claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// GoogleVerifier resolves Google OAuth access tokens against the userinfo endpoint.
type GoogleVerifier struct {
	httpClient *http.Client
	endpoint   string
}

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// NewGoogleVerifier creates a verifier using the given HTTP client (nil for the default).
func NewGoogleVerifier(client *http.Client) *GoogleVerifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoogleVerifier{httpClient: client, endpoint: googleUserinfoURL}
}

// Verify exchanges an access token for the holder's identity claims.
func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: userinfo request failed: %v", shared.ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: userinfo status %d: %s", shared.ErrAuthFailed, resp.StatusCode, body)
	}

	var claims Claims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: malformed userinfo response: %v", shared.ErrAuthFailed, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: userinfo response has no email", shared.ErrAuthFailed)
	}

	return &claims, nil
}

// AuthHandler serves login, logout, and the current-user endpoint.
type AuthHandler struct {
	users      *repositories.UserRepository
	sessions   *repositories.SessionRepository
	verifier   Verifier
	sessionTTL time.Duration
	logger     *log.Logger
}

func NewAuthHandler(users *repositories.UserRepository, sessions *repositories.SessionRepository,
	verifier Verifier, ttlDays int, logger *log.Logger) *AuthHandler {
	if ttlDays <= 0 {
		ttlDays = 14
	}
	return &AuthHandler{
		users:      users,
		sessions:   sessions,
		verifier:   verifier,
		sessionTTL: time.Duration(ttlDays) * 24 * time.Hour,
		logger:     logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{
		"POST /api/login",
		"POST /api/logout",
		"GET /api/me",
	}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/login":
		h.login(w, r)
	case "/api/logout":
		h.logout(w, r)
	case "/api/me":
		h.me(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// login verifies a provider token, upserts the account, and issues a session cookie.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Token == "" {
		writeError(w, http.StatusBadRequest, "missing login token")
		return
	}

	claims, err := h.verifier.Verify(r.Context(), payload.Token)
	if err != nil {
		h.logger.Warn("login verification failed", "err", err)
		writeError(w, http.StatusUnauthorized, "login verification failed")
		return
	}

	user, err := h.users.GetByEmail(claims.Email)
	switch {
	case errors.Is(err, shared.ErrUserNotFound):
		user = models.NewUser(0, claims.Email, claims.Name)
		user.SetPicture(claims.Picture)
		if err := h.users.Create(user); err != nil {
			h.logger.Error("user creation failed", "email", claims.Email, "err", err)
			writeError(w, http.StatusInternalServerError, "failed to create account")
			return
		}
		h.logger.Info("account created", "email", claims.Email)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "account lookup failed")
		return
	}

	if !user.Enabled() {
		writeError(w, http.StatusForbidden, "account disabled")
		return
	}

	if claims.Name != "" || claims.Picture != "" {
		if claims.Name != "" {
			user.SetName(claims.Name)
		}
		if claims.Picture != "" {
			user.SetPicture(claims.Picture)
		}
		if err := h.users.Update(user); err != nil {
			h.logger.Warn("profile refresh failed", "email", user.Email(), "err", err)
		}
	}
	if err := h.users.UpdateLastLogin(user.Email()); err != nil {
		h.logger.Warn("last login update failed", "email", user.Email(), "err", err)
	}

	raw := shared.GenerateID()
	session := models.NewSession(models.HashToken(raw), user.ID(), time.Now().Add(h.sessionTTL))
	if err := h.sessions.Create(session); err != nil {
		h.logger.Error("session creation failed", "email", user.Email(), "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     services.SessionCookie,
		Value:    raw,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, userInfo(user))
}

// logout removes the caller's session and expires the cookie.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if raw := tokenFrom(r.Context()); raw != "" {
		if err := h.sessions.DeleteByTokenHash(models.HashToken(raw)); err != nil {
			h.logger.Warn("session removal failed", "err", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     services.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// me describes the caller: their account when logged in, anonymous otherwise.
func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	if user := UserFrom(r.Context()); user != nil {
		writeJSON(w, http.StatusOK, userInfo(user))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"roles":     "public",
		"logged_in": false,
	})
}

func userInfo(user *models.User) map[string]any {
	return map[string]any{
		"email":     user.Email(),
		"name":      user.Name(),
		"roles":     user.Roles(),
		"picture":   user.Picture(),
		"enabled":   user.Enabled(),
		"logged_in": true,
	}
}
