package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sonatafm/podium/internal/formatter"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/shared"
	"github.com/urfave/cli/v3"
)

// LiveList lists broadcasts with an optional status filter.
func (r *Runner) LiveList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	filter := listFilter(cmd)
	filter.Status = cmd.String("status")

	page, err := r.catalog.ListLiveStreams(ctx, filter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlain("%s", formatter.LiveStreamTable(page.Results))
	r.writePlain("\n%d of %d streams\n", len(page.Results), page.Count)
	return nil
}

// LiveCreate schedules a broadcast.
func (r *Runner) LiveCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	scheduledAt := time.Now()
	if at := cmd.String("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("%w: --at must be RFC3339, e.g. 2026-03-14T20:30:00Z", shared.ErrInvalidFlag)
		}
		scheduledAt = parsed
	}

	stream, err := r.catalog.CreateLiveStream(ctx, models.LiveStreamUpload{
		Title:       cmd.String("title"),
		ArtistID:    cmd.String("artist"),
		Description: cmd.String("description"),
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Stream scheduled: %s (%s) at %s\n", stream.Title, stream.StreamID, stream.ScheduledAt.Format(time.RFC1123))
	return nil
}

// LiveEnd force-ends a running broadcast.
func (r *Runner) LiveEnd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	stream, err := r.catalog.EndLiveStream(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Stream ended: %s\n", stream.Title)
	return nil
}

// LiveWatch follows the live event feed and prints updates until interrupted.
func (r *Runner) LiveWatch(ctx context.Context, cmd *cli.Command) error {
	if r.feed == nil {
		return fmt.Errorf("%w: live feed not configured, set api.ws_url in config.toml", shared.ErrMissingConfig)
	}

	events, cancel := r.feed.Subscribe()
	defer cancel()

	go func() {
		if err := r.feed.Run(ctx); err != nil && ctx.Err() == nil {
			r.logger.Error("live feed stopped", "error", err)
		}
	}()

	r.writePlain("Watching live events (ctrl+c to stop)...\n\n")

	for {
		select {
		case event := <-events:
			r.writePlain("[%s] stream %s → %s (%d listening)\n",
				event.At.Format("15:04:05"), event.StreamID, event.Status, event.Listeners)
		case <-ctx.Done():
			return nil
		}
	}
}

// liveCommand handles broadcast operations
func liveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "live",
		Usage: "Live broadcast operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List broadcasts",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "status", Usage: "Filter by status (scheduled, live, ended)"},
				),
				Action: r.LiveList,
			},
			{
				Name:  "create",
				Usage: "Schedule a broadcast",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Stream title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Artist ID", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Stream description"},
					&cli.StringFlag{Name: "at", Usage: "Scheduled start (RFC3339, defaults to now)"},
				},
				Action: r.LiveCreate,
			},
			{
				Name:      "end",
				Usage:     "Force-end a running broadcast",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.LiveEnd,
			},
			{
				Name:   "watch",
				Usage:  "Follow the live event feed",
				Action: r.LiveWatch,
			},
		},
	}
}
