// Package query implements the cache-keyed read and mutation layer between
// the console and the platform API.
//
// Reads are keyed by (resource, params). Identical keys issued concurrently
// share one in-flight fetch; results stay fresh for a per-resource window.
// Mutations invalidate the mutated resource's key family plus its dependents,
// eagerly write returned entities into their single-item slot, and drive the
// toast queue. The cache is never touched on mutation failure.
package query

import "time"

// Resource identifies a platform resource's cache key family.
type Resource string

const (
	ResourceUsers         Resource = "users"
	ResourceSongs         Resource = "songs"
	ResourceAlbums        Resource = "albums"
	ResourcePodcasts      Resource = "podcasts"
	ResourceEpisodes      Resource = "episodes"
	ResourceLive          Resource = "live"
	ResourceSubscriptions Resource = "subscriptions"
	ResourcePlans         Resource = "plans"
	ResourceAds           Resource = "advertisements"
	ResourceNotifications Resource = "notifications"
	ResourceGenres        Resource = "genres"
	ResourceCategories    Resource = "categories"
	ResourceArtists       Resource = "artists"
	ResourceCities        Resource = "cities"
)

// Dependents returns the resources whose cached reads become stale when this
// resource is mutated, beyond the resource itself. The edges are explicit so
// invalidation correctness is checkable rather than relying on ad hoc key
// prefixes.
func (r Resource) Dependents() []Resource {
	switch r {
	case ResourceSongs:
		// album track listings and totals embed song data
		return []Resource{ResourceAlbums}
	case ResourceEpisodes:
		return []Resource{ResourcePodcasts}
	case ResourceAlbums:
		return []Resource{ResourceSongs}
	case ResourcePodcasts:
		return []Resource{ResourceEpisodes}
	case ResourceSubscriptions:
		// user detail embeds the latest subscription snapshot
		return []Resource{ResourceUsers}
	case ResourcePlans:
		return []Resource{ResourceSubscriptions}
	case ResourceUsers:
		return []Resource{ResourceArtists}
	default:
		return nil
	}
}

// Freshness returns how long a cached read of this resource is considered
// fresh. Live streams refresh aggressively; lookup tables barely change.
func (r Resource) Freshness() time.Duration {
	switch r {
	case ResourceLive:
		return 30 * time.Second
	case ResourceGenres, ResourceCategories, ResourceCities:
		return 10 * time.Minute
	case ResourcePlans:
		return 5 * time.Minute
	default:
		return time.Minute
	}
}

// All lists every resource family, used by the bulk exporter.
func All() []Resource {
	return []Resource{
		ResourceUsers, ResourceSongs, ResourceAlbums, ResourcePodcasts,
		ResourceEpisodes, ResourceLive, ResourceSubscriptions, ResourcePlans,
		ResourceAds, ResourceNotifications, ResourceGenres, ResourceCategories,
		ResourceArtists, ResourceCities,
	}
}
