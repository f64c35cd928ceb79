// Package server serves the web front end of the meme roller.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Per-browser state
//
// There is no server-side visitor state. Each request rebuilds a [tasks.Roller] from two cookies:
//
//   - gn_seen_v1: the seen-set, a base64url-encoded JSON array of titles
//   - gn_current_v1: the title currently on display
//
// [CookieStorage] adapts the request/response pair to [models.Storage] so the same seen-set store that backs the
// terminal UI drives the page. Writes are buffered and flushed as Set-Cookie headers before the response is written.
//
// # Routes
//
//	GET  /                   → page (initial pick happens here)
//	POST /roll               → roll, redirect to /
//	POST /reset              → reset, redirect to /
//	GET  /list/classed.json  → catalog, never cached
//	GET  /healthz            → liveness
//
// Exhaustion redirects to /?exhausted=1 so the page shows its alert once.
package server
