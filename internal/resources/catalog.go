// Package resources exposes the platform catalog to the console: one
// list/get/create/update/delete surface per resource, with every read served
// through the query cache and every write routed through the mutator so
// dependent cache families stay coherent.
package resources

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
	"github.com/sonatafm/podium/internal/shared"
)

// API endpoint prefixes. Every collection path carries a trailing slash; item
// paths append "<id>/".
const (
	pathAccount       = "/account/"
	pathSongs         = "/songs/"
	pathAlbums        = "/albums/"
	pathPodcasts      = "/podcast/"
	pathEpisodes      = "/podcast/episodes/"
	pathLive          = "/live/"
	pathSubscriptions = "/subscription/"
	pathPlans         = "/subscription/plans/"
	pathAds           = "/advertisements/"
	pathNotifications = "/notification/"
	pathGenres        = "/genre/"
	pathCategories    = "/category/"
	pathArtists       = "/artist/"
	pathCities        = "/city/"
)

// Catalog bundles the API client with the cache and mutation layers.
type Catalog struct {
	api     *api.Client
	cache   *query.Cache
	mutator *query.Mutator
	logger  *log.Logger
}

// NewCatalog wires a catalog over the given client and cache layers.
func NewCatalog(client *api.Client, cache *query.Cache, mutator *query.Mutator, logger *log.Logger) *Catalog {
	return &Catalog{api: client, cache: cache, mutator: mutator, logger: logger}
}

// Cache returns the underlying query cache.
func (c *Catalog) Cache() *query.Cache { return c.cache }

// Filter narrows a list request. Zero values are omitted from the query
// string so the cache key only reflects parameters that were actually sent.
type Filter struct {
	Page      int
	PageSize  int
	Search    string
	Genre     string
	Category  string
	ArtistID  string
	AlbumID   string
	PodcastID string
	Status    string
	Role      string
	Published *bool
}

// Params flattens the filter into query parameters.
func (f Filter) Params() map[string]string {
	params := map[string]string{
		"search":     f.Search,
		"genre":      f.Genre,
		"category":   f.Category,
		"artist_id":  f.ArtistID,
		"album_id":   f.AlbumID,
		"podcast_id": f.PodcastID,
		"status":     f.Status,
		"role":       f.Role,
	}

	if f.Page > 0 {
		params["page"] = strconv.Itoa(f.Page)
	}

	if f.PageSize > 0 {
		params["page_size"] = strconv.Itoa(f.PageSize)
	}

	if f.Published != nil {
		params["is_published"] = strconv.FormatBool(*f.Published)
	}

	for k, v := range params {
		if v == "" {
			delete(params, k)
		}
	}

	return params
}

func itemPath(collection, id string) string {
	return collection + id + "/"
}

// list fetches a resource collection through the cache. A 404 on a collection
// endpoint means the deployment does not expose that resource at all, which
// callers see as [shared.ErrEndpointUnavailable] rather than an empty page.
func list[T any](ctx context.Context, c *Catalog, resource query.Resource, path string, f Filter) (*models.Page[T], error) {
	params := f.Params()
	key := query.ListKey(resource, params)

	page, err := query.Fetch(ctx, c.cache, key, func(ctx context.Context) (*models.Page[T], error) {
		page, err := api.GetPage[T](ctx, c.api, path, params)
		if err != nil {
			return nil, mapListError(resource, path, err)
		}

		return page, nil
	})
	if err != nil {
		return nil, err
	}

	return page, nil
}

// get fetches a single item through the cache.
func get[T any](ctx context.Context, c *Catalog, resource query.Resource, collection, id string) (*T, error) {
	key := query.ItemKey(resource, id)

	return query.Fetch(ctx, c.cache, key, func(ctx context.Context) (*T, error) {
		return api.GetOne[T](ctx, c.api, itemPath(collection, id))
	})
}

// mapListError upgrades a collection-level 404 to the endpoint-unavailable
// sentinel. Item-level 404s keep their not-found meaning.
func mapListError(resource query.Resource, path string, err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("%w: %s (%s)", shared.ErrEndpointUnavailable, resource, path)
	}

	return err
}
