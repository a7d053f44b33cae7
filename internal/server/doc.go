// Package server provides HTTP routing, middleware, and request handlers for the photos backend.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Request Handlers
//
// Each API surface is one [Handler] implementation registering its own routes:
//
//   - [AlbumsHandler] : album index and album detail, filtered by the caller's roles
//   - [PhotosHandler] : scaled image delivery with ETag revalidation and the srcset map
//   - [DocsHandler] : documentation folder listing and file delivery
//   - [AuthHandler] : login, logout, and the current-user endpoint
//   - [UsersHandler] : admin-only user management
//   - [AuthorizeHandler] : forward-auth decisions for the reverse proxy
//
// # Sessions and Roles
//
// The session middleware resolves the caller's roles once per request and
// stores them in the request context. Roles come from the session cookie when
// the token maps to a live session, from the X-Forwarded-Roles header when the
// reverse proxy has already authenticated the caller, and default to "public"
// otherwise.
//
// # OAuth Callback Handler
//
// OAuthHandler implements the OAuth2 authorization code callback flow used by
// the CLI login command. The handler validates the state parameter (CSRF
// protection), exchanges the authorization code for tokens, and sends the
// result through a channel. It only processes one callback to prevent replay
// attacks.
package server
