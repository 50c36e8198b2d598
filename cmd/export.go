package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sonatafm/podium/internal/formatter"
	"github.com/sonatafm/podium/internal/query"
	"github.com/sonatafm/podium/internal/shared"
	"github.com/sonatafm/podium/internal/tasks"
	"github.com/urfave/cli/v3"
)

// parseResources maps a comma separated resource list to cache families.
func parseResources(arg string) ([]query.Resource, error) {
	if arg == "" {
		return nil, nil
	}

	known := map[string]query.Resource{}
	for _, resource := range query.All() {
		known[string(resource)] = resource
	}

	var selected []query.Resource
	for _, name := range strings.Split(arg, ",") {
		name = strings.TrimSpace(name)
		resource, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown resource %q", shared.ErrInvalidFlag, name)
		}
		selected = append(selected, resource)
	}
	return selected, nil
}

// ExportRun dumps the catalog to disk and records a snapshot.
func (r *Runner) ExportRun(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	selected, err := parseResources(cmd.String("resources"))
	if err != nil {
		return err
	}

	r.logger.Info("starting catalog export", "output", cmd.String("output"))
	r.writePlain("Starting catalog export...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchResource:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.WriteFile:
				r.writePlain("\n📝 %s\n", update.Message)
			case tasks.RecordSnapshot:
				r.writePlain("📌 %s\n", update.Message)
			}
		}
	}()

	result, err := r.exporter.Export(ctx, progressCh, tasks.ExportOpts{
		OutputDir: cmd.String("output"),
		PageSize:  int(cmd.Int("page-size")),
		Resources: selected,
	})
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Output: %s\n", result.OutputPath)
	r.writePlain("Resources exported: %d (%d items)\n", len(result.Dumps), result.TotalItems)

	if result.SnapshotID != "" {
		r.writePlain("Snapshot: %s\n", result.SnapshotID)
	}

	if len(result.Failures) > 0 {
		r.writePlain("\n%d endpoints failed:\n", len(result.Failures))
		for _, failure := range result.Failures {
			if failure.Unavailable {
				r.writePlain("  - %s: not deployed on this platform\n", failure.Resource)
			} else {
				r.writePlain("  - %s: %s\n", failure.Resource, failure.Message)
			}
		}
	}

	return nil
}

// ExportHistory lists recorded snapshots from the local database.
func (r *Runner) ExportHistory(ctx context.Context, cmd *cli.Command) error {
	if r.snapshots == nil {
		return fmt.Errorf("%w: snapshot store not initialized, run 'podium setup database'", shared.ErrMissingConfig)
	}

	criteria := map[string]any{}
	if kind := cmd.String("kind"); kind != "" {
		criteria["kind"] = kind
	}

	snapshots, err := r.snapshots.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(snapshots, true)
	}

	r.writePlain("%s", formatter.SnapshotTable(snapshots))
	return nil
}

// exportCommand handles catalog export operations
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog to disk",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Dump catalog resources to a JSON file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (defaults to sonata_export_{timestamp})",
					},
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "API page size while fetching",
						Value: 100,
					},
					&cli.StringFlag{
						Name:  "resources",
						Usage: "Comma separated resources to export (defaults to all)",
					},
				},
				Action: r.ExportRun,
			},
			{
				Name:  "history",
				Usage: "List recorded export snapshots",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Usage: "Filter by snapshot kind"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ExportHistory,
			},
		},
	}
}
