package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/formatter"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/resources"
	"github.com/urfave/cli/v3"
)

// listFilter builds a catalog filter from the common listing flags.
func listFilter(cmd *cli.Command) resources.Filter {
	return resources.Filter{
		Page:     int(cmd.Int("page")),
		PageSize: int(cmd.Int("page-size")),
		Search:   cmd.String("search"),
	}
}

// listFlags returns the flags shared by every listing subcommand.
func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Usage: "Page number", Value: 1},
		&cli.IntFlag{Name: "page-size", Usage: "Items per page", Value: 50},
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Search term"},
		&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
	}
}

// openUpload wraps a local file as a multipart part for the given form field.
func openUpload(field, path string) (api.File, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return api.File{}, nil, fmt.Errorf("failed to open %s file: %w", field, err)
	}
	return api.File{Field: field, Filename: filepath.Base(path), Reader: f}, func() { f.Close() }, nil
}

// SongsList lists tracks with optional search and genre filters.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	filter := listFilter(cmd)
	filter.Genre = cmd.String("genre")
	filter.ArtistID = cmd.String("artist")
	filter.AlbumID = cmd.String("album")

	page, err := r.catalog.ListSongs(ctx, filter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}
	if cmd.Bool("csv") {
		data, err := formatter.SongsToCSV(page.Results)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	r.writePlain("%s", formatter.SongTable(page.Results))
	r.writePlain("\n%d of %d songs\n", len(page.Results), page.Count)
	return nil
}

// SongsGet shows a single track.
func (r *Runner) SongsGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	song, err := r.catalog.GetSong(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	return r.writeJSON(song, true)
}

// SongsCreate uploads a new track with its audio file and optional cover art.
func (r *Runner) SongsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	upload := models.TrackUpload{
		Title:       cmd.String("title"),
		ArtistID:    cmd.String("artist"),
		AlbumID:     cmd.String("album"),
		Genre:       cmd.String("genre"),
		Duration:    int(cmd.Int("duration")),
		IsPublished: cmd.Bool("publish"),
		IsExplicit:  cmd.Bool("explicit"),
	}

	audio, closeAudio, err := openUpload("audio_file", cmd.String("audio"))
	if err != nil {
		return err
	}
	defer closeAudio()

	files := []api.File{audio}
	if coverPath := cmd.String("cover"); coverPath != "" {
		cover, closeCover, err := openUpload("cover", coverPath)
		if err != nil {
			return err
		}
		defer closeCover()
		files = append(files, cover)
	}

	song, err := r.catalog.CreateSong(ctx, upload, files)
	if err != nil {
		return err
	}

	r.writePlain("✓ Song created: %s (%s)\n", song.Title, song.TrackID)
	return nil
}

// SongsPublish toggles a track's publish state.
func (r *Runner) SongsPublish(ctx context.Context, cmd *cli.Command, published bool) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	song, err := r.catalog.SetSongPublished(ctx, cmd.StringArg("id"), published)
	if err != nil {
		return err
	}

	verb := "published"
	if !published {
		verb = "unpublished"
	}
	r.writePlain("✓ Song %s: %s\n", verb, song.Title)
	return nil
}

// SongsDelete removes a track from the catalog.
func (r *Runner) SongsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if err := r.catalog.DeleteSong(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Song deleted: %s\n", id)
	return nil
}

// songsCommand handles track catalog operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"song"},
		Usage:   "Track catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List tracks",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "genre", Usage: "Filter by genre"},
					&cli.StringFlag{Name: "artist", Usage: "Filter by artist ID"},
					&cli.StringFlag{Name: "album", Usage: "Filter by album ID"},
					&cli.BoolFlag{Name: "csv", Usage: "Output CSV"},
				),
				Action: r.SongsList,
			},
			{
				Name:      "get",
				Usage:     "Show a single track",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.SongsGet,
			},
			{
				Name:  "create",
				Usage: "Upload a new track",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Track title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Artist ID", Required: true},
					&cli.StringFlag{Name: "album", Usage: "Album ID"},
					&cli.StringFlag{Name: "genre", Usage: "Genre name"},
					&cli.IntFlag{Name: "duration", Usage: "Duration in seconds"},
					&cli.StringFlag{Name: "audio", Usage: "Path to audio file", Required: true},
					&cli.StringFlag{Name: "cover", Usage: "Path to cover image"},
					&cli.BoolFlag{Name: "publish", Usage: "Publish immediately"},
					&cli.BoolFlag{Name: "explicit", Usage: "Mark as explicit"},
				},
				Action: r.SongsCreate,
			},
			{
				Name:      "publish",
				Usage:     "Publish a track",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.SongsPublish(ctx, cmd, true)
				},
			},
			{
				Name:      "unpublish",
				Usage:     "Unpublish a track",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.SongsPublish(ctx, cmd, false)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a track",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.SongsDelete,
			},
		},
	}
}
