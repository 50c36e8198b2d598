package resources

import (
	"context"

	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
)

// ListLiveStreams returns a page of streams. The live cache family has the
// shortest freshness window so listener counts stay close to real time.
func (c *Catalog) ListLiveStreams(ctx context.Context, f Filter) (*models.Page[models.LiveStream], error) {
	return list[models.LiveStream](ctx, c, query.ResourceLive, pathLive, f)
}

// GetLiveStream returns a single stream.
func (c *Catalog) GetLiveStream(ctx context.Context, id string) (*models.LiveStream, error) {
	return get[models.LiveStream](ctx, c, query.ResourceLive, pathLive, id)
}

// CreateLiveStream schedules a stream.
func (c *Catalog) CreateLiveStream(ctx context.Context, upload models.LiveStreamUpload) (*models.LiveStream, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceLive, "Scheduling stream",
		func(s *models.LiveStream) string { return s.StreamID },
		func(ctx context.Context) (*models.LiveStream, error) {
			var stream models.LiveStream
			if err := c.api.Post(ctx, pathLive, upload, &stream); err != nil {
				return nil, err
			}
			return &stream, nil
		})
}

// UpdateLiveStream edits a scheduled stream.
func (c *Catalog) UpdateLiveStream(ctx context.Context, id string, upload models.LiveStreamUpload) (*models.LiveStream, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourceLive, "Updating stream",
		func(s *models.LiveStream) string { return s.StreamID },
		func(ctx context.Context) (*models.LiveStream, error) {
			var stream models.LiveStream
			if err := c.api.Patch(ctx, itemPath(pathLive, id), upload, &stream); err != nil {
				return nil, err
			}
			return &stream, nil
		})
}

// EndLiveStream forces a running stream to end.
func (c *Catalog) EndLiveStream(ctx context.Context, id string) (*models.LiveStream, error) {
	return query.MutateItem(ctx, c.mutator, query.ResourceLive, "Ending stream",
		func(s *models.LiveStream) string { return s.StreamID },
		func(ctx context.Context) (*models.LiveStream, error) {
			var stream models.LiveStream
			path := itemPath(pathLive, id) + "end/"
			if err := c.api.Post(ctx, path, nil, &stream); err != nil {
				return nil, err
			}
			return &stream, nil
		})
}
