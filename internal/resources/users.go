package resources

import (
	"context"
	"fmt"

	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
)

// ListUsers returns a page of platform accounts.
func (c *Catalog) ListUsers(ctx context.Context, f Filter) (*models.Page[models.User], error) {
	return list[models.User](ctx, c, query.ResourceUsers, pathAccount, f)
}

// GetUser returns a single account by id.
func (c *Catalog) GetUser(ctx context.Context, id string) (*models.User, error) {
	return get[models.User](ctx, c, query.ResourceUsers, pathAccount, id)
}

// UpdateUser applies a partial profile update.
func (c *Catalog) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceUsers, "Updating user",
		func(u *models.User) string { return u.UserID },
		func(ctx context.Context) (*models.User, error) {
			var user models.User
			if err := c.api.Patch(ctx, itemPath(pathAccount, id), update, &user); err != nil {
				return nil, err
			}
			return &user, nil
		})
}

// SetUserActive enables or disables an account.
func (c *Catalog) SetUserActive(ctx context.Context, id string, active bool) (*models.User, error) {
	label := "Deactivating user"
	if active {
		label = "Activating user"
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceUsers, label,
		func(u *models.User) string { return u.UserID },
		func(ctx context.Context) (*models.User, error) {
			var user models.User
			payload := models.UserUpdate{IsActive: &active}
			if err := c.api.Patch(ctx, itemPath(pathAccount, id), payload, &user); err != nil {
				return nil, err
			}
			return &user, nil
		})
}

// DeleteUser removes an account.
func (c *Catalog) DeleteUser(ctx context.Context, id string) error {
	return c.mutator.Delete(ctx, query.ResourceUsers, "Deleting user", id, func(ctx context.Context) error {
		return c.api.Delete(ctx, itemPath(pathAccount, id))
	})
}

// ListArtists returns accounts with an artist profile.
func (c *Catalog) ListArtists(ctx context.Context, f Filter) (*models.Page[models.Artist], error) {
	return list[models.Artist](ctx, c, query.ResourceArtists, pathArtists, f)
}

// GetArtist returns a single artist profile.
func (c *Catalog) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	return get[models.Artist](ctx, c, query.ResourceArtists, pathArtists, id)
}

// VerifyArtist marks an artist profile as verified.
func (c *Catalog) VerifyArtist(ctx context.Context, id string) (*models.Artist, error) {
	return query.MutateItem(ctx, c.mutator, query.ResourceArtists, "Verifying artist",
		func(a *models.Artist) string { return a.ArtistID },
		func(ctx context.Context) (*models.Artist, error) {
			var artist models.Artist
			payload := map[string]bool{"is_verified": true}
			path := fmt.Sprintf("%s%s/verify/", pathArtists, id)
			if err := c.api.Post(ctx, path, payload, &artist); err != nil {
				return nil, err
			}
			return &artist, nil
		})
}
