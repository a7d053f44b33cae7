package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dstrand/photoweb/internal/server"
	"github.com/dstrand/photoweb/internal/services"
	"github.com/dstrand/photoweb/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
)

// Login performs the Google OAuth2 flow, exchanges the resulting access token
// for a service session, and persists the session token for later API calls.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	if config.Auth.ClientID == "" || config.Auth.ClientSecret == "" {
		return fmt.Errorf("%w: auth.client_id and auth.client_secret must be set", shared.ErrMissingConfig)
	}

	redirectURI := config.Auth.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://localhost:8484/callback"
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.Auth.ClientID,
		ClientSecret: config.Auth.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	token, err := r.doOAuth(oauthConfig, redirectURI)
	if err != nil {
		return err
	}

	r.logger.Info("authorization complete, creating service session")

	body, err := json.Marshal(map[string]string{"token": token.AccessToken})
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	resp, err := r.api.Post(ctx, "/api/login", body)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAuthFailed, resp.StatusCode, string(resp.Body))
	}

	sessionToken := sessionCookieValue(resp)
	if sessionToken == "" {
		return fmt.Errorf("%w: no session cookie in login response", shared.ErrAuthFailed)
	}
	r.api.SetSession(sessionToken)

	if err := saveSessionToken(sessionToken); err != nil {
		r.logger.Warn("failed to persist session token", "error", err)
	}

	email := "unknown"
	if user, ok := resp.JSONData.(map[string]any); ok {
		if v, ok := user["email"].(string); ok {
			email = v
		}
	}

	r.writePlain("✓ Logged in as %s\n", email)
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(oauthConfig *oauth2.Config, redirectURI string) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	callback, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI: %w", err)
	}

	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
	oauthHandler := server.NewOAuthHandler(oauthConfig, state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	httpServer := &http.Server{
		Addr:    callback.Host,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", callback.Host)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Google sign-in...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}

// sessionCookieValue extracts the session token from the login response's Set-Cookie header.
func sessionCookieValue(resp *services.APIResponse) string {
	parsed := &http.Response{Header: resp.Headers}
	for _, cookie := range parsed.Cookies() {
		if cookie.Name == services.SessionCookie {
			return cookie.Value
		}
	}
	return ""
}

func saveSessionToken(token string) error {
	path, err := sessionTokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}
	return nil
}
