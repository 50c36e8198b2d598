package models

import (
	"fmt"
	"time"
)

// Podcast represents a podcast show in the platform catalog.
type Podcast struct {
	PodcastID     string    `json:"id"`
	Title         string    `json:"title"`
	ArtistID      string    `json:"artist_id"`
	ArtistName    string    `json:"artist_name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	CoverURL      string    `json:"cover_url"`
	Episodes      []Episode `json:"episodes,omitempty"`
	TotalEpisodes int       `json:"total_episodes"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p Podcast) Cover() string { return coverOrDefault(p.CoverURL) }

// Episode represents a single podcast episode with listen counters.
type Episode struct {
	EpisodeID     string    `json:"id"`
	PodcastID     string    `json:"podcast_id"`
	PodcastTitle  string    `json:"podcast_title,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	EpisodeNumber int       `json:"episode_number"`
	Duration      int       `json:"duration"` // seconds
	AudioFile     string    `json:"audio_file"`
	CoverURL      string    `json:"cover_url"`
	PlayCount     int       `json:"play_count"`
	LikeCount     int       `json:"like_count"`
	ListenerCount int       `json:"listener_count"`
	IsPublished   bool      `json:"is_published"`
	PublishedAt   time.Time `json:"published_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var _ Playable = Episode{}

func (e Episode) PlayableID() string    { return e.EpisodeID }
func (e Episode) PlayableTitle() string { return e.Title }
func (e Episode) AudioURL() string      { return e.AudioFile }
func (e Episode) PlayableDuration() int { return e.Duration }
func (e Episode) Kind() PlayableKind    { return KindEpisode }
func (e Episode) Cover() string         { return coverOrDefault(e.CoverURL) }

// PodcastUpload carries the fields for creating or updating a podcast.
type PodcastUpload struct {
	Title       string `json:"title"`
	ArtistID    string `json:"artist_id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}

// Validate checks required upload fields before the request is sent.
func (u PodcastUpload) Validate() error {
	if u.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if u.ArtistID == "" {
		return fmt.Errorf("%w: artist_id", ErrMissingField)
	}
	return nil
}

// EpisodeUpload carries the fields for creating or updating an episode.
type EpisodeUpload struct {
	PodcastID     string `json:"podcast_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EpisodeNumber int    `json:"episode_number"`
	Duration      int    `json:"duration"`
	IsPublished   bool   `json:"is_published"`
}

// Validate checks required upload fields before the request is sent.
func (u EpisodeUpload) Validate() error {
	if u.PodcastID == "" {
		return fmt.Errorf("%w: podcast_id", ErrMissingField)
	}
	if u.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if u.EpisodeNumber < 0 {
		return fmt.Errorf("%w: episode_number must not be negative", ErrInvalidField)
	}
	return nil
}
