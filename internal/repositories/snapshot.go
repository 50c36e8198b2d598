package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/shared"
)

// SnapshotRepository implements [models.Repository] for catalog export
// records.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new [SnapshotRepository] with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts a new snapshot with generated ID and sequence
func (r *SnapshotRepository) Create(snapshot *models.Snapshot) error {
	sequence, err := NextSequence(r.db, "snapshots")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	snapshot.SetID(shared.GenerateID())
	snapshot.SetSequence(sequence)

	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO snapshots (id, sequence, kind, path, resource_count, taken_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, snapshot.ID(), sequence, snapshot.Kind(), snapshot.Path(),
		snapshot.ResourceCount(), snapshot.TakenAt(), snapshot.CreatedAt(), snapshot.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// Get retrieves a snapshot by ID, excluding soft-deleted rows
func (r *SnapshotRepository) Get(id string) (*models.Snapshot, error) {
	query := `
		SELECT id, sequence, kind, path, resource_count, taken_at, created_at, updated_at, deleted_at
		FROM snapshots
		WHERE id = ? AND deleted_at IS NULL
	`

	snapshot, err := scanOne(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: snapshot %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	return snapshot, nil
}

// Update modifies an existing snapshot's path and resource count
func (r *SnapshotRepository) Update(snapshot *models.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	snapshot.Touch()

	query := `
		UPDATE snapshots
		SET path = ?, resource_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, snapshot.Path(), snapshot.ResourceCount(), snapshot.UpdatedAt(), snapshot.ID())
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: snapshot %s", shared.ErrNotFound, snapshot.ID())
	}

	return nil
}

// Delete soft-deletes a snapshot by ID. The export file on disk is untouched.
func (r *SnapshotRepository) Delete(id string) error {
	query := `
		UPDATE snapshots
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: snapshot %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves snapshots matching the given criteria, newest first,
// excluding soft-deleted rows. Supported criteria: "kind".
func (r *SnapshotRepository) List(criteria map[string]any) ([]*models.Snapshot, error) {
	query := `
		SELECT id, sequence, kind, path, resource_count, taken_at, created_at, updated_at, deleted_at
		FROM snapshots
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.Snapshot
	for rows.Next() {
		snapshot, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshots, nil
}

// Latest returns the most recent snapshot of the given kind, or every kind
// when kind is empty.
func (r *SnapshotRepository) Latest(kind string) (*models.Snapshot, error) {
	snapshots, err := r.List(map[string]any{"kind": kind})
	if err != nil {
		return nil, err
	}

	if len(snapshots) == 0 {
		return nil, fmt.Errorf("%w: no snapshots recorded", shared.ErrNotFound)
	}

	return snapshots[0], nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row scanner) (*models.Snapshot, error) {
	var (
		id            string
		sequence      int
		kind          string
		path          string
		resourceCount int
		takenAt       time.Time
		createdAt     time.Time
		updatedAt     time.Time
		deletedAt     sql.NullTime
	)

	err := row.Scan(&id, &sequence, &kind, &path, &resourceCount, &takenAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreSnapshot(id, sequence, kind, path, resourceCount, takenAt, createdAt, updatedAt, deleted), nil
}
