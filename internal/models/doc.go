// Package models defines domain entities for the Sonata streaming platform.
//
// The package contains three categories of types:
//
// 1. Catalog entities mirrored from the platform API (transient client copies):
//   - [Track], [Album], [Artist] : music catalog
//   - [Podcast], [Episode] : podcast catalog with listen counters
//   - [User] : accounts with roles and embedded artist/subscription snapshots
//   - [SubscriptionPlan], [Subscription] : billing plans and their instances
//   - [LiveStream], [Advertisement], [Notification] : operational resources
//   - [Genre], [Category], [City] : lookup tables
//
// 2. Wire envelopes: [Page] and [LinkedPage] wrap paginated list responses.
//
// 3. Persistent entities: [Snapshot] records locally stored catalog exports and
// implements the Model interface providing ID generation, timestamps,
// validation, and soft delete support. The Repository[T] interface defines
// standard CRUD operations for database access.
//
// Catalog entities are owned server-side. The client never fabricates entity
// IDs; every create/update/delete goes through the API.
package models
