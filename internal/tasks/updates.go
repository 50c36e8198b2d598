package tasks

import (
	"fmt"

	"github.com/sonatafm/podium/internal/query"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchResource Phase = iota
	WriteFile
	RecordSnapshot
)

func (p Phase) String() string {
	switch p {
	case FetchResource:
		return "fetch_resource"
	case WriteFile:
		return "write_file"
	case RecordSnapshot:
		return "record_snapshot"
	default:
		return ""
	}
}

func fetchResourceUpdate(step, total int, resource query.Resource) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchResource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching %s...", step, total, resource),
	}
}

func resourceDoneUpdate(step, total int, resource query.Resource, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchResource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d items)", step, total, resource, count),
	}
}

func resourceUnavailableUpdate(step, total int, resource query.Resource) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchResource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] - %s (endpoint unavailable)", step, total, resource),
	}
}

func resourceFailedUpdate(step, total int, resource query.Resource, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchResource,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, resource, err),
	}
}

func writeFileUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFile,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing export to %s...", path),
	}
}

func recordSnapshotUpdate(id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RecordSnapshot,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Snapshot recorded: %s", id),
		Data:    id,
	}
}
