package resources

import (
	"context"
	"strconv"

	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
)

// ListSongs returns a page of tracks.
func (c *Catalog) ListSongs(ctx context.Context, f Filter) (*models.Page[models.Track], error) {
	return list[models.Track](ctx, c, query.ResourceSongs, pathSongs, f)
}

// GetSong returns a single track.
func (c *Catalog) GetSong(ctx context.Context, id string) (*models.Track, error) {
	return get[models.Track](ctx, c, query.ResourceSongs, pathSongs, id)
}

// CreateSong uploads a new track. The audio file is required; a cover image
// may accompany it.
func (c *Catalog) CreateSong(ctx context.Context, upload models.TrackUpload, files []api.File) (*models.Track, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceSongs, "Creating song",
		func(t *models.Track) string { return t.TrackID },
		func(ctx context.Context) (*models.Track, error) {
			var track models.Track
			if err := c.api.Upload(ctx, pathSongs, trackFields(upload), files, &track); err != nil {
				return nil, err
			}
			return &track, nil
		})
}

// UpdateSong applies metadata changes to a track.
func (c *Catalog) UpdateSong(ctx context.Context, id string, upload models.TrackUpload) (*models.Track, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceSongs, "Updating song",
		func(t *models.Track) string { return t.TrackID },
		func(ctx context.Context) (*models.Track, error) {
			var track models.Track
			if err := c.api.Patch(ctx, itemPath(pathSongs, id), upload, &track); err != nil {
				return nil, err
			}
			return &track, nil
		})
}

// SetSongPublished toggles a track's published flag.
func (c *Catalog) SetSongPublished(ctx context.Context, id string, published bool) (*models.Track, error) {
	label := "Unpublishing song"
	if published {
		label = "Publishing song"
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceSongs, label,
		func(t *models.Track) string { return t.TrackID },
		func(ctx context.Context) (*models.Track, error) {
			var track models.Track
			payload := map[string]bool{"is_published": published}
			if err := c.api.Patch(ctx, itemPath(pathSongs, id), payload, &track); err != nil {
				return nil, err
			}
			return &track, nil
		})
}

// DeleteSong removes a track.
func (c *Catalog) DeleteSong(ctx context.Context, id string) error {
	return c.mutator.Delete(ctx, query.ResourceSongs, "Deleting song", id, func(ctx context.Context) error {
		return c.api.Delete(ctx, itemPath(pathSongs, id))
	})
}

// trackFields flattens a track upload into multipart form fields.
func trackFields(u models.TrackUpload) map[string]string {
	fields := map[string]string{
		"title":        u.Title,
		"artist_id":    u.ArtistID,
		"genre":        u.Genre,
		"duration":     strconv.Itoa(u.Duration),
		"is_published": strconv.FormatBool(u.IsPublished),
		"is_explicit":  strconv.FormatBool(u.IsExplicit),
	}

	if u.AlbumID != "" {
		fields["album_id"] = u.AlbumID
	}

	return fields
}
