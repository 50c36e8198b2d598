package models

import (
	"fmt"
	"time"
)

// Track represents a music track in the platform catalog.
type Track struct {
	TrackID     string    `json:"id"`
	Title       string    `json:"title"`
	ArtistID    string    `json:"artist_id"`
	ArtistName  string    `json:"artist_name"`
	AlbumID     string    `json:"album_id,omitempty"`
	AlbumTitle  string    `json:"album_title,omitempty"`
	Genre       string    `json:"genre"`
	Duration    int       `json:"duration"` // seconds
	IsPublished bool      `json:"is_published"`
	IsExplicit  bool      `json:"is_explicit"`
	CoverURL    string    `json:"cover_url"`
	AudioFile   string    `json:"audio_file"`
	PlayCount   int       `json:"play_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var _ Playable = Track{}

func (t Track) PlayableID() string    { return t.TrackID }
func (t Track) PlayableTitle() string { return t.Title }
func (t Track) AudioURL() string      { return t.AudioFile }
func (t Track) PlayableDuration() int { return t.Duration }
func (t Track) Kind() PlayableKind    { return KindTrack }
func (t Track) Cover() string         { return coverOrDefault(t.CoverURL) }

// Album represents an ordered collection of tracks.
type Album struct {
	AlbumID     string    `json:"id"`
	Title       string    `json:"title"`
	ArtistID    string    `json:"artist_id"`
	ArtistName  string    `json:"artist_name"`
	Category    string    `json:"category"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url"`
	Tracks      []Track   `json:"tracks,omitempty"`
	TotalTracks int       `json:"total_tracks"`
	Duration    int       `json:"total_duration"` // seconds
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a Album) Cover() string { return coverOrDefault(a.CoverURL) }

// Artist represents an artist profile.
type Artist struct {
	ArtistID  string    `json:"id"`
	UserID    string    `json:"user_id"`
	StageName string    `json:"stage_name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	Verified  bool      `json:"is_verified"`
	CreatedAt time.Time `json:"created_at"`
}

// Genre is a lookup-table entry for track and album genres.
type Genre struct {
	GenreID string `json:"id"`
	Name    string `json:"name"`
}

// Category is a lookup-table entry for album and podcast categories.
type Category struct {
	CategoryID string `json:"id"`
	Name       string `json:"name"`
}

// City is a lookup-table entry used in user profiles.
type City struct {
	CityID  string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// TrackUpload carries the fields for creating or updating a track.
// Audio and cover are uploaded as multipart files alongside these fields.
type TrackUpload struct {
	Title       string `json:"title"`
	ArtistID    string `json:"artist_id"`
	AlbumID     string `json:"album_id,omitempty"`
	Genre       string `json:"genre"`
	Duration    int    `json:"duration"`
	IsPublished bool   `json:"is_published"`
	IsExplicit  bool   `json:"is_explicit"`
}

// Validate checks required upload fields before the request is sent.
func (u TrackUpload) Validate() error {
	if u.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if u.ArtistID == "" {
		return fmt.Errorf("%w: artist_id", ErrMissingField)
	}
	if u.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidField)
	}
	return nil
}

// AlbumUpload carries the fields for creating or updating an album.
type AlbumUpload struct {
	Title       string `json:"title"`
	ArtistID    string `json:"artist_id"`
	Category    string `json:"category"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}

// Validate checks required upload fields before the request is sent.
func (u AlbumUpload) Validate() error {
	if u.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if u.ArtistID == "" {
		return fmt.Errorf("%w: artist_id", ErrMissingField)
	}
	return nil
}
