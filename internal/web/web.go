// Package web implements an HTMX-based web console mirroring the TUI functionality.
//
// # HTMX Web Console Implementation Plan
//
// # Architecture
//
// The web console replicates the menu/browse/detail TUI workflow using
// server-side rendering with HTMX for dynamic updates. Each view corresponds
// to a template and handler:
//
//  1. Section Menu: Server-rendered list of catalog sections
//  2. Browse Table: HTMX partial swap listing songs, albums, podcasts, episodes,
//     live streams, users or plans with pagination
//  3. Detail Panel: HTMX partial for a single resource with mutation buttons
//  4. Live Monitor: SSE (Server-Sent Events) streaming the platform live feed
//  5. Export Monitor: SSE streaming export progress with a final snapshot link
//
// Core Components
//
//   - HTTP Server: chi router with html/template rendering, reusing the
//     middleware stack from internal/server (Recoverer, request logging)
//   - Service Integration: Uses the same resources.Catalog, tasks.ExportEngine
//     and live.Feed as the TUI
//   - Session Management: Cookie-based sessions wrapping session.Manager for
//     OAuth state and the current operator
//   - SSE Handlers: Stream live events and export progress
//
// Routes
//
//	GET  /                      → Section menu (requires auth)
//	GET  /auth/login            → OAuth initiation
//	GET  /auth/callback         → OAuth completion
//	GET  /browse/{section}      → HTMX partial: paged resource table
//	GET  /browse/{section}/{id} → HTMX partial: resource detail
//	POST /export                → Start export, return SSE endpoint
//	GET  /export/{id}/stream    → SSE progress stream
//	GET  /live/stream           → SSE live feed
//
// Templates
//
//   - base.html: Layout with navigation, auth status
//   - menu.html: Section list with hx-get on rows
//   - table.html: Partial template per section with pagination controls
//   - detail.html: Resource detail with publish/cancel/end actions
//   - export.html: SSE consumer with per-resource progress bar
//
// # State Management
//
// Unlike the TUI's in-memory state, the web console persists state in:
//   - Session cookies: OAuth state, current operator ID
//   - Snapshot records: export history across requests
//   - In-memory channels: SSE connections for the live feed and active exports
//
// # Progress Streaming
//
// Export progress uses Server-Sent Events:
//  1. POST /export starts tasks.ExportEngine.Export in a goroutine
//  2. Client opens SSE connection to /export/{id}/stream
//  3. The progress channel drives per-resource SSE events
//  4. On completion, send "done" with the snapshot sequence and path
//
// The live monitor subscribes to live.Feed the same way the TUI does and
// forwards each models.LiveEvent as an SSE event, so cache invalidation
// stays centralized in the feed.
//
// Authentication Flow
//
//  1. Operator visits /, redirected to /auth/login if not authenticated
//  2. OAuth dance reuses session.Manager Exchange and SaveToken
//  3. Session middleware calls EnsureFresh on protected routes
//  4. Expired refresh tokens redirect back through /auth/login
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - github.com/go-chi/chi/v5: Routing, shared with internal/server
//   - net/http: SSE flushing
//
// Implementation Tasks
//
//  1. Router setup reusing the internal/server middleware
//  2. Template structure with HTMX integration
//  3. Session middleware wrapping session.Manager
//  4. Section menu handler over query.All
//  5. Browse handlers per section (HTMX partials with pagination)
//  6. Detail handlers with mutation actions through resources.Catalog
//  7. Export endpoint driving tasks.ExportEngine
//  8. SSE handlers for export progress and the live feed
//  9. OAuth handlers wrapping the existing login flow
//  10. Error handling mapped from the shared error taxonomy
//
// # Testing Strategy
//
// Use httptest:
//   - Serve a fake platform API behind resources.Catalog
//   - Validate HTMX headers and response structure
//   - Test SSE stream formatting for live and export events
package web
