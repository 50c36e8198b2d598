package main

import (
	"context"

	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/formatter"
	"github.com/sonatafm/podium/internal/models"
	"github.com/urfave/cli/v3"
)

// PodcastsList lists shows with optional search and category filters.
func (r *Runner) PodcastsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	filter := listFilter(cmd)
	filter.Category = cmd.String("category")

	page, err := r.catalog.ListPodcasts(ctx, filter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlain("%s", formatter.PodcastTable(page.Results))
	r.writePlain("\n%d of %d podcasts\n", len(page.Results), page.Count)
	return nil
}

// PodcastsGet shows a single podcast including its episodes.
func (r *Runner) PodcastsGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	podcast, err := r.catalog.GetPodcast(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(podcast, true)
	}

	r.writePlainHeader(podcast.Title)
	r.writePlain("Host: %s\nCategory: %s\nPublished: %v\n\n", podcast.ArtistName, podcast.Category, podcast.IsPublished)
	r.writePlain("%s", formatter.EpisodeTable(podcast.Episodes))
	return nil
}

// PodcastsCreate creates a show, optionally with cover art.
func (r *Runner) PodcastsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	upload := models.PodcastUpload{
		Title:       cmd.String("title"),
		ArtistID:    cmd.String("artist"),
		Category:    cmd.String("category"),
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

	podcast, err := r.catalog.CreatePodcast(ctx, upload, files)
	if err != nil {
		return err
	}

	r.writePlain("✓ Podcast created: %s (%s)\n", podcast.Title, podcast.PodcastID)
	return nil
}

// PodcastsDelete removes a show.
func (r *Runner) PodcastsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if err := r.catalog.DeletePodcast(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Podcast deleted: %s\n", id)
	return nil
}

// EpisodesList lists episodes, optionally restricted to one show.
func (r *Runner) EpisodesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	filter := listFilter(cmd)
	filter.PodcastID = cmd.String("podcast")

	page, err := r.catalog.ListEpisodes(ctx, filter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlain("%s", formatter.EpisodeTable(page.Results))
	r.writePlain("\n%d of %d episodes\n", len(page.Results), page.Count)
	return nil
}

// EpisodesCreate uploads a new episode with its audio file.
func (r *Runner) EpisodesCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	upload := models.EpisodeUpload{
		PodcastID:     cmd.String("podcast"),
		Title:         cmd.String("title"),
		Description:   cmd.String("description"),
		EpisodeNumber: int(cmd.Int("number")),
		Duration:      int(cmd.Int("duration")),
		IsPublished:   cmd.Bool("publish"),
	}

	audio, closeAudio, err := openUpload("audio_file", cmd.String("audio"))
	if err != nil {
		return err
	}
	defer closeAudio()

	episode, err := r.catalog.CreateEpisode(ctx, upload, []api.File{audio})
	if err != nil {
		return err
	}

	r.writePlain("✓ Episode created: %s (#%d)\n", episode.Title, episode.EpisodeNumber)
	return nil
}

// EpisodesDelete removes an episode.
func (r *Runner) EpisodesDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if err := r.catalog.DeleteEpisode(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Episode deleted: %s\n", id)
	return nil
}

// podcastsCommand handles podcast and episode operations
func podcastsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "podcasts",
		Aliases: []string{"podcast", "pods"},
		Usage:   "Podcast and episode operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List podcasts",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "category", Usage: "Filter by category"},
				),
				Action: r.PodcastsList,
			},
			{
				Name:      "get",
				Usage:     "Show a podcast and its episodes",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.PodcastsGet,
			},
			{
				Name:  "create",
				Usage: "Create a new podcast",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Podcast title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Host artist ID", Required: true},
					&cli.StringFlag{Name: "category", Usage: "Category name"},
					&cli.StringFlag{Name: "description", Usage: "Podcast description"},
					&cli.StringFlag{Name: "cover", Usage: "Path to cover image"},
					&cli.BoolFlag{Name: "publish", Usage: "Publish immediately"},
				},
				Action: r.PodcastsCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a podcast",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.PodcastsDelete,
			},
			{
				Name:  "episodes",
				Usage: "Episode operations",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List episodes",
						Flags: append(listFlags(),
							&cli.StringFlag{Name: "podcast", Usage: "Filter by podcast ID"},
						),
						Action: r.EpisodesList,
					},
					{
						Name:  "create",
						Usage: "Upload a new episode",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "podcast", Usage: "Podcast ID", Required: true},
							&cli.StringFlag{Name: "title", Usage: "Episode title", Required: true},
							&cli.StringFlag{Name: "description", Usage: "Episode description"},
							&cli.IntFlag{Name: "number", Usage: "Episode number"},
							&cli.IntFlag{Name: "duration", Usage: "Duration in seconds"},
							&cli.StringFlag{Name: "audio", Usage: "Path to audio file", Required: true},
							&cli.BoolFlag{Name: "publish", Usage: "Publish immediately"},
						},
						Action: r.EpisodesCreate,
					},
					{
						Name:      "delete",
						Usage:     "Delete an episode",
						Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
						Action:    r.EpisodesDelete,
					},
				},
			},
		},
	}
}
