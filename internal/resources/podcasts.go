package resources

import (
	"context"
	"strconv"

	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
)

// ListPodcasts returns a page of podcast shows.
func (c *Catalog) ListPodcasts(ctx context.Context, f Filter) (*models.Page[models.Podcast], error) {
	return list[models.Podcast](ctx, c, query.ResourcePodcasts, pathPodcasts, f)
}

// GetPodcast returns a single show.
func (c *Catalog) GetPodcast(ctx context.Context, id string) (*models.Podcast, error) {
	return get[models.Podcast](ctx, c, query.ResourcePodcasts, pathPodcasts, id)
}

// CreatePodcast creates a show, optionally with cover art.
func (c *Catalog) CreatePodcast(ctx context.Context, upload models.PodcastUpload, files []api.File) (*models.Podcast, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourcePodcasts, "Creating podcast",
		func(p *models.Podcast) string { return p.PodcastID },
		func(ctx context.Context) (*models.Podcast, error) {
			var podcast models.Podcast
			if err := c.api.Upload(ctx, pathPodcasts, podcastFields(upload), files, &podcast); err != nil {
				return nil, err
			}
			return &podcast, nil
		})
}

// UpdatePodcast applies metadata changes to a show.
func (c *Catalog) UpdatePodcast(ctx context.Context, id string, upload models.PodcastUpload) (*models.Podcast, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourcePodcasts, "Updating podcast",
		func(p *models.Podcast) string { return p.PodcastID },
		func(ctx context.Context) (*models.Podcast, error) {
			var podcast models.Podcast
			if err := c.api.Patch(ctx, itemPath(pathPodcasts, id), upload, &podcast); err != nil {
				return nil, err
			}
			return &podcast, nil
		})
}

// DeletePodcast removes a show and its episodes.
func (c *Catalog) DeletePodcast(ctx context.Context, id string) error {
	return c.mutator.Delete(ctx, query.ResourcePodcasts, "Deleting podcast", id, func(ctx context.Context) error {
		return c.api.Delete(ctx, itemPath(pathPodcasts, id))
	})
}

// ListEpisodes returns a page of episodes, typically filtered by PodcastID.
func (c *Catalog) ListEpisodes(ctx context.Context, f Filter) (*models.Page[models.Episode], error) {
	return list[models.Episode](ctx, c, query.ResourceEpisodes, pathEpisodes, f)
}

// GetEpisode returns a single episode.
func (c *Catalog) GetEpisode(ctx context.Context, id string) (*models.Episode, error) {
	return get[models.Episode](ctx, c, query.ResourceEpisodes, pathEpisodes, id)
}

// CreateEpisode uploads a new episode with its audio file.
func (c *Catalog) CreateEpisode(ctx context.Context, upload models.EpisodeUpload, files []api.File) (*models.Episode, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceEpisodes, "Creating episode",
		func(e *models.Episode) string { return e.EpisodeID },
		func(ctx context.Context) (*models.Episode, error) {
			var episode models.Episode
			if err := c.api.Upload(ctx, pathEpisodes, episodeFields(upload), files, &episode); err != nil {
				return nil, err
			}
			return &episode, nil
		})
}

// UpdateEpisode applies metadata changes to an episode.
func (c *Catalog) UpdateEpisode(ctx context.Context, id string, upload models.EpisodeUpload) (*models.Episode, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceEpisodes, "Updating episode",
		func(e *models.Episode) string { return e.EpisodeID },
		func(ctx context.Context) (*models.Episode, error) {
			var episode models.Episode
			if err := c.api.Patch(ctx, itemPath(pathEpisodes, id), upload, &episode); err != nil {
				return nil, err
			}
			return &episode, nil
		})
}

// DeleteEpisode removes an episode.
func (c *Catalog) DeleteEpisode(ctx context.Context, id string) error {
	return c.mutator.Delete(ctx, query.ResourceEpisodes, "Deleting episode", id, func(ctx context.Context) error {
		return c.api.Delete(ctx, itemPath(pathEpisodes, id))
	})
}

func podcastFields(u models.PodcastUpload) map[string]string {
	return map[string]string{
		"title":        u.Title,
		"artist_id":    u.ArtistID,
		"category":     u.Category,
		"description":  u.Description,
		"is_published": strconv.FormatBool(u.IsPublished),
	}
}

func episodeFields(u models.EpisodeUpload) map[string]string {
	return map[string]string{
		"podcast_id":     u.PodcastID,
		"title":          u.Title,
		"description":    u.Description,
		"episode_number": strconv.Itoa(u.EpisodeNumber),
		"duration":       strconv.Itoa(u.Duration),
		"is_published":   strconv.FormatBool(u.IsPublished),
	}
}
