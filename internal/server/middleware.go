package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/repositories"
	"github.com/dstrand/photoweb/internal/services"
	"golang.org/x/time/rate"
)

// RequestLogger logs each request's method, path, status, and duration.
func RequestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// CORS allows cross-origin requests from any origin with credentials.
func CORS() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit throttles requests per client IP. A zero limit disables throttling.
func RateLimit(perSecond float64, burst int) Middleware {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = int(perSecond)
	}

	var mu sync.Mutex
	limiters := map[string]*rate.Limiter{}

	limiterFor := func(addr string) *rate.Limiter {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[host]
		if !ok {
			l = rate.NewLimiter(rate.Limit(perSecond), burst)
			limiters[host] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiterFor(r.RemoteAddr).Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Sessions resolves the caller's identity once per request.
//
// A valid session cookie maps to a user and their roles. The reverse proxy's
// X-Forwarded-Roles header is honored when no session is present, and
// anonymous callers fall back to the public role.
func Sessions(users *repositories.UserRepository, sessions *repositories.SessionRepository, logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			roles := []string{"public"}

			if cookie, err := r.Cookie(services.SessionCookie); err == nil && cookie.Value != "" {
				ctx = withToken(ctx, cookie.Value)
				session, err := sessions.GetByTokenHash(models.HashToken(cookie.Value))
				if err == nil {
					user, err := users.Get(session.UserID())
					if err == nil && user.Enabled() {
						ctx = WithUser(ctx, user)
						roles = user.RoleList()
					}
				} else {
					logger.Debug("session lookup failed", "err", err)
				}
			} else if forwarded := r.Header.Get("X-Forwarded-Roles"); forwarded != "" {
				roles = models.SplitRoles(forwarded)
			}

			next.ServeHTTP(w, r.WithContext(WithRoles(ctx, roles)))
		})
	}
}
