package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot records a catalog export written to local disk.
//
// Implements [Model]; persisted by repositories.SnapshotRepository.
type Snapshot struct {
	id            string
	sequence      int
	kind          string
	path          string
	resourceCount int
	takenAt       time.Time
	createdAt     time.Time
	updatedAt     time.Time
	deletedAt     *time.Time
}

var _ Model = (*Snapshot)(nil)

// NewSnapshot creates a snapshot record for an export written to path.
// The ID is assigned by the repository on create.
func NewSnapshot(sequence int, kind, path string, resourceCount int, takenAt time.Time) *Snapshot {
	now := time.Now().UTC()
	return &Snapshot{
		sequence:      sequence,
		kind:          kind,
		path:          path,
		resourceCount: resourceCount,
		takenAt:       takenAt,
		createdAt:     now,
		updatedAt:     now,
	}
}

// RestoreSnapshot reconstructs a snapshot from a database row.
func RestoreSnapshot(id string, sequence int, kind, path string, resourceCount int, takenAt, createdAt, updatedAt time.Time, deletedAt *time.Time) *Snapshot {
	return &Snapshot{
		id:            id,
		sequence:      sequence,
		kind:          kind,
		path:          path,
		resourceCount: resourceCount,
		takenAt:       takenAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deletedAt:     deletedAt,
	}
}

func (s *Snapshot) ID() string { return s.id }

func (s *Snapshot) Sequence() int { return s.sequence }

func (s *Snapshot) Kind() string { return s.kind }

func (s *Snapshot) Path() string { return s.path }

func (s *Snapshot) ResourceCount() int { return s.resourceCount }

func (s *Snapshot) TakenAt() time.Time { return s.takenAt }

func (s *Snapshot) CreatedAt() time.Time { return s.createdAt }

func (s *Snapshot) UpdatedAt() time.Time { return s.updatedAt }

func (s *Snapshot) DeletedAt() *time.Time { return s.deletedAt }

// SetID assigns the generated identifier. Called by the repository on create.
func (s *Snapshot) SetID(id string) { s.id = id }

// SetSequence assigns the sequence number. Called by the repository on create.
func (s *Snapshot) SetSequence(seq int) { s.sequence = seq }

// Touch updates the modification timestamp.
func (s *Snapshot) Touch() { s.updatedAt = time.Now().UTC() }

// MarshalJSON exposes the snapshot's fields for command output.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID            string     `json:"id"`
		Sequence      int        `json:"sequence"`
		Kind          string     `json:"kind"`
		Path          string     `json:"path"`
		ResourceCount int        `json:"resource_count"`
		TakenAt       time.Time  `json:"taken_at"`
		CreatedAt     time.Time  `json:"created_at"`
		UpdatedAt     time.Time  `json:"updated_at"`
		DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	}{s.id, s.sequence, s.kind, s.path, s.resourceCount, s.takenAt, s.createdAt, s.updatedAt, s.deletedAt})
}

// Validate checks that the snapshot has the fields required for persistence.
func (s *Snapshot) Validate() error {
	if s.id == "" {
		return fmt.Errorf("%w: id", ErrMissingField)
	}
	if s.kind == "" {
		return fmt.Errorf("%w: kind", ErrMissingField)
	}
	if s.path == "" {
		return fmt.Errorf("%w: path", ErrMissingField)
	}
	if s.takenAt.IsZero() {
		return fmt.Errorf("%w: taken_at", ErrMissingField)
	}
	return nil
}
