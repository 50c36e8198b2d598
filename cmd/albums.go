package main

import (
	"context"

	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/formatter"
	"github.com/sonatafm/podium/internal/models"
	"github.com/urfave/cli/v3"
)

// AlbumsList lists albums with optional search and genre filters.
func (r *Runner) AlbumsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	filter := listFilter(cmd)
	filter.Genre = cmd.String("genre")
	filter.ArtistID = cmd.String("artist")

	page, err := r.catalog.ListAlbums(ctx, filter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlain("%s", formatter.AlbumTable(page.Results))
	r.writePlain("\n%d of %d albums\n", len(page.Results), page.Count)
	return nil
}

// AlbumsGet shows a single album including its tracklist.
func (r *Runner) AlbumsGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	album, err := r.catalog.GetAlbum(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(album, true)
	}

	r.writePlainHeader(album.Title)
	r.writePlain("Artist: %s\nGenre: %s\nPublished: %v\n\n", album.ArtistName, album.Genre, album.IsPublished)
	r.writePlain("%s", formatter.SongTable(album.Tracks))
	return nil
}

// AlbumsCreate creates an album, optionally with cover art.
func (r *Runner) AlbumsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	upload := models.AlbumUpload{
		Title:       cmd.String("title"),
		ArtistID:    cmd.String("artist"),
		Category:    cmd.String("category"),
		Genre:       cmd.String("genre"),
		Description: cmd.String("description"),
		IsPublished: cmd.Bool("publish"),
	}

	var files []api.File
	if coverPath := cmd.String("cover"); coverPath != "" {
		cover, closeCover, err := openUpload("cover", coverPath)
		if err != nil {
			return err
		}
		defer closeCover()
		files = append(files, cover)
	}

	album, err := r.catalog.CreateAlbum(ctx, upload, files)
	if err != nil {
		return err
	}

	r.writePlain("✓ Album created: %s (%s)\n", album.Title, album.AlbumID)
	return nil
}

// AlbumsAddSong attaches an existing track to an album.
func (r *Runner) AlbumsAddSong(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	album, err := r.catalog.AddAlbumSong(ctx, cmd.StringArg("id"), cmd.String("song"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Song added to %s (%d tracks)\n", album.Title, album.TotalTracks)
	return nil
}

// AlbumsRemoveSong detaches a track from an album.
func (r *Runner) AlbumsRemoveSong(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	album, err := r.catalog.RemoveAlbumSong(ctx, cmd.StringArg("id"), cmd.String("song"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Song removed from %s (%d tracks)\n", album.Title, album.TotalTracks)
	return nil
}

// AlbumsDelete removes an album.
func (r *Runner) AlbumsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if err := r.catalog.DeleteAlbum(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Album deleted: %s\n", id)
	return nil
}

// albumsCommand handles album catalog operations
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "albums",
		Aliases: []string{"album"},
		Usage:   "Album catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List albums",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "genre", Usage: "Filter by genre"},
					&cli.StringFlag{Name: "artist", Usage: "Filter by artist ID"},
				),
				Action: r.AlbumsList,
			},
			{
				Name:      "get",
				Usage:     "Show an album and its tracklist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.AlbumsGet,
			},
			{
				Name:  "create",
				Usage: "Create a new album",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Album title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Artist ID", Required: true},
					&cli.StringFlag{Name: "category", Usage: "Category name"},
					&cli.StringFlag{Name: "genre", Usage: "Genre name"},
					&cli.StringFlag{Name: "description", Usage: "Album description"},
					&cli.StringFlag{Name: "cover", Usage: "Path to cover image"},
					&cli.BoolFlag{Name: "publish", Usage: "Publish immediately"},
				},
				Action: r.AlbumsCreate,
			},
			{
				Name:      "add-song",
				Usage:     "Attach a track to an album",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "song", Usage: "Song ID to attach", Required: true},
				},
				Action: r.AlbumsAddSong,
			},
			{
				Name:      "remove-song",
				Usage:     "Detach a track from an album",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "song", Usage: "Song ID to detach", Required: true},
				},
				Action: r.AlbumsRemoveSong,
			},
			{
				Name:      "delete",
				Usage:     "Delete an album",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.AlbumsDelete,
			},
		},
	}
}
