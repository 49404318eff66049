// Package server provides HTTP routing, middleware, and the suggestion API handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Handlers
//
// [API] implements the [Handler] interface and serves three endpoints:
//
//	POST /suggestions                → run the suggestion pipeline for a batch of seed titles
//	GET  /users/{id}/liked-songs     → a user's liked songs, most recent first
//	GET  /health                     → liveness plus a database ping
//
// Handler errors are sanitized before they reach the wire: invalid input maps
// to 400, an unavailable engine to 503, and everything else to a generic 500
// with the detail kept in the server log.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
