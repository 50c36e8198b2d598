// package models defines the data model for the Sonata operator console
package models

import (
	"time"
)

// Model defines the base interface for all locally persisted models.
// Implementations include Snapshot.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// PlayableKind distinguishes the two media channels of the playback deck.
type PlayableKind string

const (
	KindTrack   PlayableKind = "track"
	KindEpisode PlayableKind = "episode"
)

// Playable is any catalog item the unified playback deck can load.
// Implemented by [Track] and [Episode].
type Playable interface {
	PlayableID() string
	PlayableTitle() string
	AudioURL() string
	PlayableDuration() int // seconds
	Kind() PlayableKind
}

// DefaultCoverURL is the placeholder rendered when an entity has no cover art.
const DefaultCoverURL = "/static/images/cover-placeholder.png"

// coverOrDefault falls back to the placeholder for missing cover art.
func coverOrDefault(url string) string {
	if url == "" {
		return DefaultCoverURL
	}
	return url
}
