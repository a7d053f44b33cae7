// package server contains middleware & handlers for the photos web service
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dstrand/photoweb/internal/authz"
	"github.com/dstrand/photoweb/internal/docs"
	"github.com/dstrand/photoweb/internal/images"
	"github.com/dstrand/photoweb/internal/library"
	"github.com/dstrand/photoweb/internal/repositories"
	"github.com/dstrand/photoweb/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, authentication, CORS, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the photos service.
// Implementations handle specific endpoints (albums, photos, docs, auth, users).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Server wires the photos backend's handlers, middleware, and dependencies
// into a single HTTP service.
type Server struct {
	cfg      *shared.Config
	store    *library.Store
	cache    *images.Cache
	docs     *docs.Service
	users    *repositories.UserRepository
	sessions *repositories.SessionRepository
	rules    *authz.Manager
	verifier Verifier
	logger   *log.Logger
	router   *BasicRouter
}

// New assembles a server from its dependencies and registers all routes.
func New(cfg *shared.Config, store *library.Store, cache *images.Cache, docSvc *docs.Service,
	users *repositories.UserRepository, sessions *repositories.SessionRepository,
	rules *authz.Manager, verifier Verifier, logger *log.Logger) *Server {

	s := &Server{
		cfg:      cfg,
		store:    store,
		cache:    cache,
		docs:     docSvc,
		users:    users,
		sessions: sessions,
		rules:    rules,
		verifier: verifier,
		logger:   logger,
		router:   NewBasicRouter(),
	}

	s.router.Use(
		RequestLogger(logger),
		CORS(),
		RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
		Sessions(users, sessions, logger),
	)

	s.router.Handle(http.MethodGet, "/api/health", http.HandlerFunc(s.handleHealth))
	s.router.Handler(NewAlbumsHandler(store))
	s.router.Handler(NewPhotosHandler(store, cache, logger))
	s.router.Handler(NewDocsHandler(docSvc))
	s.router.Handler(NewAuthHandler(users, sessions, verifier, cfg.Auth.SessionTTLDays, logger))
	s.router.Handler(NewUsersHandler(users))
	s.router.Handler(NewAuthorizeHandler(store, rules, logger))

	return s
}

// Router exposes the configured router, used by tests to drive requests
// through the full middleware stack.
func (s *Server) Router() http.Handler { return s.router }

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("photos service listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		s.logger.Info("photos service stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	lib := s.store.Library()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"albums": len(lib.Albums),
		"photos": len(lib.Photos),
	})
}
