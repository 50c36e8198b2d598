// Package tasks implements the console's long-running catalog operations.
//
// The core abstraction is [ExportEngine], which walks every platform resource
// through the catalog, writes the collected data to disk, and records a
// snapshot row locally. Operations emit [ProgressUpdate] values via channels
// for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
	"github.com/sonatafm/podium/internal/repositories"
	"github.com/sonatafm/podium/internal/resources"
	"github.com/sonatafm/podium/internal/shared"
)

// ResourceDump holds everything fetched for one resource.
type ResourceDump struct {
	Resource query.Resource `json:"resource"`
	Count    int            `json:"count"`
	Items    any            `json:"items,omitempty"`
}

// EndpointFailure records a resource that could not be fetched. Unavailable
// distinguishes a deployment that does not expose the endpoint from an
// endpoint that failed; neither is the same as an empty collection.
type EndpointFailure struct {
	Resource    query.Resource `json:"resource"`
	Unavailable bool           `json:"unavailable"`
	Message     string         `json:"message"`
}

// DumpResult summarizes a catalog export.
type DumpResult struct {
	TakenAt    time.Time         `json:"taken_at"`
	OutputPath string            `json:"output_path"`
	Dumps      []ResourceDump    `json:"dumps"`
	Failures   []EndpointFailure `json:"failures,omitempty"`
	TotalItems int               `json:"total_items"`
	SnapshotID string            `json:"snapshot_id,omitempty"`
}

// ExportOpts configures a catalog export.
type ExportOpts struct {
	OutputDir string           // Base output directory (default: sonata_export_{epoch})
	PageSize  int              // Page size per request (default: 100)
	Resources []query.Resource // Resources to export (default: all)
}

// ExportEngine walks the platform catalog and writes it to local disk.
type ExportEngine struct {
	catalog   *resources.Catalog
	snapshots *repositories.SnapshotRepository
	logger    *log.Logger
}

// NewExportEngine creates an engine over the catalog. The snapshot repository
// may be nil, in which case exports are not recorded locally.
func NewExportEngine(catalog *resources.Catalog, snapshots *repositories.SnapshotRepository, logger *log.Logger) *ExportEngine {
	return &ExportEngine{catalog: catalog, snapshots: snapshots, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Export fetches every requested resource, writes one JSON document with the
// full dump plus a manifest, and records a snapshot. Per-resource failures do
// not abort the export; they are collected in the result.
func (e *ExportEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*DumpResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrEndpointUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("sonata_export_%d", time.Now().Unix())
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	if len(opts.Resources) == 0 {
		opts.Resources = query.All()
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &DumpResult{TakenAt: time.Now().UTC(), OutputPath: opts.OutputDir}
	total := len(opts.Resources)

	for i, resource := range opts.Resources {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		e.sendProgress(progress, fetchResourceUpdate(i+1, total, resource))

		count, items, err := e.fetch(ctx, resource, opts.PageSize)
		switch {
		case errors.Is(err, shared.ErrEndpointUnavailable):
			result.Failures = append(result.Failures, EndpointFailure{
				Resource: resource, Unavailable: true, Message: err.Error(),
			})
			e.sendProgress(progress, resourceUnavailableUpdate(i+1, total, resource))
		case err != nil:
			result.Failures = append(result.Failures, EndpointFailure{
				Resource: resource, Message: err.Error(),
			})
			e.sendProgress(progress, resourceFailedUpdate(i+1, total, resource, err))
		default:
			result.Dumps = append(result.Dumps, ResourceDump{Resource: resource, Count: count, Items: items})
			result.TotalItems += count
			e.sendProgress(progress, resourceDoneUpdate(i+1, total, resource, count))
		}
	}

	dumpPath := filepath.Join(opts.OutputDir, "catalog.json")
	e.sendProgress(progress, writeFileUpdate(dumpPath))

	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("failed to marshal export: %w", err)
	}
	if err := os.WriteFile(dumpPath, data, 0644); err != nil {
		return result, fmt.Errorf("failed to write export: %w", err)
	}

	if e.snapshots != nil {
		snapshot := models.NewSnapshot(0, "full", dumpPath, result.TotalItems, result.TakenAt)
		if err := e.snapshots.Create(snapshot); err != nil {
			return result, fmt.Errorf("export written but snapshot not recorded: %w", err)
		}

		result.SnapshotID = snapshot.ID()
		e.sendProgress(progress, recordSnapshotUpdate(snapshot.ID()))
	}

	return result, nil
}

// fetch pulls every page of one resource.
func (e *ExportEngine) fetch(ctx context.Context, resource query.Resource, pageSize int) (int, any, error) {
	switch resource {
	case query.ResourceUsers:
		return collect(ctx, e.catalog.ListUsers, pageSize)
	case query.ResourceSongs:
		return collect(ctx, e.catalog.ListSongs, pageSize)
	case query.ResourceAlbums:
		return collect(ctx, e.catalog.ListAlbums, pageSize)
	case query.ResourcePodcasts:
		return collect(ctx, e.catalog.ListPodcasts, pageSize)
	case query.ResourceEpisodes:
		return collect(ctx, e.catalog.ListEpisodes, pageSize)
	case query.ResourceLive:
		return collect(ctx, e.catalog.ListLiveStreams, pageSize)
	case query.ResourceSubscriptions:
		return collect(ctx, e.catalog.ListSubscriptions, pageSize)
	case query.ResourcePlans:
		return collect(ctx, e.catalog.ListPlans, pageSize)
	case query.ResourceAds:
		return collect(ctx, e.catalog.ListAdvertisements, pageSize)
	case query.ResourceNotifications:
		return collect(ctx, e.catalog.ListNotifications, pageSize)
	case query.ResourceGenres:
		return collect(ctx, e.catalog.ListGenres, pageSize)
	case query.ResourceCategories:
		return collect(ctx, e.catalog.ListCategories, pageSize)
	case query.ResourceArtists:
		return collect(ctx, e.catalog.ListArtists, pageSize)
	case query.ResourceCities:
		return collect(ctx, e.catalog.ListCities, pageSize)
	default:
		return 0, nil, fmt.Errorf("%w: unknown resource %s", shared.ErrInvalidArgument, resource)
	}
}

// collect drains every page of a list endpoint.
func collect[T any](ctx context.Context, listFn func(context.Context, resources.Filter) (*models.Page[T], error), pageSize int) (int, any, error) {
	var items []T

	for page := 1; ; page++ {
		p, err := listFn(ctx, resources.Filter{Page: page, PageSize: pageSize})
		if err != nil {
			return 0, nil, err
		}

		items = append(items, p.Results...)
		if !p.HasNext() {
			break
		}
	}

	return len(items), items, nil
}
