package resources

import (
	"context"
	"strconv"

	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
)

// ListAlbums returns a page of albums.
func (c *Catalog) ListAlbums(ctx context.Context, f Filter) (*models.Page[models.Album], error) {
	return list[models.Album](ctx, c, query.ResourceAlbums, pathAlbums, f)
}

// GetAlbum returns a single album with its track listing.
func (c *Catalog) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	return get[models.Album](ctx, c, query.ResourceAlbums, pathAlbums, id)
}

// CreateAlbum creates an album, optionally with a cover image.
func (c *Catalog) CreateAlbum(ctx context.Context, upload models.AlbumUpload, files []api.File) (*models.Album, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceAlbums, "Creating album",
		func(a *models.Album) string { return a.AlbumID },
		func(ctx context.Context) (*models.Album, error) {
			var album models.Album
			if err := c.api.Upload(ctx, pathAlbums, albumFields(upload), files, &album); err != nil {
				return nil, err
			}
			return &album, nil
		})
}

// UpdateAlbum applies metadata changes. Track membership moves through
// AddAlbumSong and RemoveAlbumSong; the server keeps total_tracks and the
// invalidation edge between songs and albums makes the console reread both.
func (c *Catalog) UpdateAlbum(ctx context.Context, id string, upload models.AlbumUpload) (*models.Album, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceAlbums, "Updating album",
		func(a *models.Album) string { return a.AlbumID },
		func(ctx context.Context) (*models.Album, error) {
			var album models.Album
			if err := c.api.Patch(ctx, itemPath(pathAlbums, id), upload, &album); err != nil {
				return nil, err
			}
			return &album, nil
		})
}

// AddAlbumSong attaches an existing track to an album.
func (c *Catalog) AddAlbumSong(ctx context.Context, albumID, songID string) (*models.Album, error) {
	return c.editAlbumSongs(ctx, albumID, songID, "Adding song to album", "add")
}

// RemoveAlbumSong detaches a track from an album.
func (c *Catalog) RemoveAlbumSong(ctx context.Context, albumID, songID string) (*models.Album, error) {
	return c.editAlbumSongs(ctx, albumID, songID, "Removing song from album", "remove")
}

func (c *Catalog) editAlbumSongs(ctx context.Context, albumID, songID, label, action string) (*models.Album, error) {
	return query.MutateItem(ctx, c.mutator, query.ResourceAlbums, label,
		func(a *models.Album) string { return a.AlbumID },
		func(ctx context.Context) (*models.Album, error) {
			var album models.Album
			payload := map[string]string{"song_id": songID, "action": action}
			path := itemPath(pathAlbums, albumID) + "songs/"
			if err := c.api.Post(ctx, path, payload, &album); err != nil {
				return nil, err
			}
			return &album, nil
		})
}

// DeleteAlbum removes an album. Its tracks survive as singles.
func (c *Catalog) DeleteAlbum(ctx context.Context, id string) error {
	return c.mutator.Delete(ctx, query.ResourceAlbums, "Deleting album", id, func(ctx context.Context) error {
		return c.api.Delete(ctx, itemPath(pathAlbums, id))
	})
}

func albumFields(u models.AlbumUpload) map[string]string {
	return map[string]string{
		"title":        u.Title,
		"artist_id":    u.ArtistID,
		"category":     u.Category,
		"genre":        u.Genre,
		"description":  u.Description,
		"is_published": strconv.FormatBool(u.IsPublished),
	}
}
