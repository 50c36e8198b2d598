package resources

import (
	"context"

	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
)

// Lookup tables and operational feeds. Genres, categories, and cities change
// rarely, so their cache families carry the long freshness window.

// ListGenres returns the genre lookup table.
func (c *Catalog) ListGenres(ctx context.Context, f Filter) (*models.Page[models.Genre], error) {
	return list[models.Genre](ctx, c, query.ResourceGenres, pathGenres, f)
}

// CreateGenre adds a genre.
func (c *Catalog) CreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	return query.MutateItem(ctx, c.mutator, query.ResourceGenres, "Creating genre",
		func(g *models.Genre) string { return g.GenreID },
		func(ctx context.Context) (*models.Genre, error) {
			var genre models.Genre
			if err := c.api.Post(ctx, pathGenres, map[string]string{"name": name}, &genre); err != nil {
				return nil, err
			}
			return &genre, nil
		})
}

// DeleteGenre removes a genre.
func (c *Catalog) DeleteGenre(ctx context.Context, id string) error {
	return c.mutator.Delete(ctx, query.ResourceGenres, "Deleting genre", id, func(ctx context.Context) error {
		return c.api.Delete(ctx, itemPath(pathGenres, id))
	})
}

// ListCategories returns the category lookup table.
func (c *Catalog) ListCategories(ctx context.Context, f Filter) (*models.Page[models.Category], error) {
	return list[models.Category](ctx, c, query.ResourceCategories, pathCategories, f)
}

// CreateCategory adds a category.
func (c *Catalog) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	return query.MutateItem(ctx, c.mutator, query.ResourceCategories, "Creating category",
		func(cat *models.Category) string { return cat.CategoryID },
		func(ctx context.Context) (*models.Category, error) {
			var category models.Category
			if err := c.api.Post(ctx, pathCategories, map[string]string{"name": name}, &category); err != nil {
				return nil, err
			}
			return &category, nil
		})
}

// DeleteCategory removes a category.
func (c *Catalog) DeleteCategory(ctx context.Context, id string) error {
	return c.mutator.Delete(ctx, query.ResourceCategories, "Deleting category", id, func(ctx context.Context) error {
		return c.api.Delete(ctx, itemPath(pathCategories, id))
	})
}

// ListCities returns the city lookup table.
func (c *Catalog) ListCities(ctx context.Context, f Filter) (*models.Page[models.City], error) {
	return list[models.City](ctx, c, query.ResourceCities, pathCities, f)
}

// ListAdvertisements returns a page of ad campaigns.
func (c *Catalog) ListAdvertisements(ctx context.Context, f Filter) (*models.Page[models.Advertisement], error) {
	return list[models.Advertisement](ctx, c, query.ResourceAds, pathAds, f)
}

// SetAdvertisementActive starts or pauses a campaign.
func (c *Catalog) SetAdvertisementActive(ctx context.Context, id string, active bool) (*models.Advertisement, error) {
	label := "Pausing advertisement"
	if active {
		label = "Activating advertisement"
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceAds, label,
		func(a *models.Advertisement) string { return a.AdID },
		func(ctx context.Context) (*models.Advertisement, error) {
			var ad models.Advertisement
			payload := map[string]bool{"is_active": active}
			if err := c.api.Patch(ctx, itemPath(pathAds, id), payload, &ad); err != nil {
				return nil, err
			}
			return &ad, nil
		})
}

// DeleteAdvertisement removes a campaign.
func (c *Catalog) DeleteAdvertisement(ctx context.Context, id string) error {
	return c.mutator.Delete(ctx, query.ResourceAds, "Deleting advertisement", id, func(ctx context.Context) error {
		return c.api.Delete(ctx, itemPath(pathAds, id))
	})
}

// ListNotifications returns a page of pushed notifications.
func (c *Catalog) ListNotifications(ctx context.Context, f Filter) (*models.Page[models.Notification], error) {
	return list[models.Notification](ctx, c, query.ResourceNotifications, pathNotifications, f)
}

// SendNotification pushes a notification to a user, or to everyone when
// userID is empty.
func (c *Catalog) SendNotification(ctx context.Context, userID, title, body string) (*models.Notification, error) {
	return query.MutateItem(ctx, c.mutator, query.ResourceNotifications, "Sending notification",
		func(n *models.Notification) string { return n.NotificationID },
		func(ctx context.Context) (*models.Notification, error) {
			var notification models.Notification
			payload := map[string]string{"user_id": userID, "title": title, "body": body}
			if err := c.api.Post(ctx, pathNotifications, payload, &notification); err != nil {
				return nil, err
			}
			return &notification, nil
		})
}
