package models

import (
	"fmt"
	"time"
)

// LiveStreamStatus enumerates live stream states.
type LiveStreamStatus string

const (
	LiveScheduled LiveStreamStatus = "scheduled"
	LiveRunning   LiveStreamStatus = "live"
	LiveEnded     LiveStreamStatus = "ended"
)

// LiveStream represents a scheduled or running live broadcast.
type LiveStream struct {
	StreamID      string           `json:"id"`
	Title         string           `json:"title"`
	ArtistID      string           `json:"artist_id"`
	ArtistName    string           `json:"artist_name"`
	Description   string           `json:"description"`
	CoverURL      string           `json:"cover_url"`
	StreamURL     string           `json:"stream_url"`
	Status        LiveStreamStatus `json:"status"`
	ListenerCount int              `json:"listener_count"`
	ScheduledAt   time.Time        `json:"scheduled_at"`
	StartedAt     *time.Time       `json:"started_at,omitempty"`
	EndedAt       *time.Time       `json:"ended_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

func (s LiveStream) Cover() string { return coverOrDefault(s.CoverURL) }

// LiveEvent is a status update pushed over the live websocket feed.
type LiveEvent struct {
	Type      string           `json:"type"` // "live.update"
	StreamID  string           `json:"stream_id"`
	Status    LiveStreamStatus `json:"status"`
	Listeners int              `json:"listeners"`
	At        time.Time        `json:"at"`
}

// LiveStreamUpload carries the fields for scheduling or updating a stream.
type LiveStreamUpload struct {
	Title       string    `json:"title"`
	ArtistID    string    `json:"artist_id"`
	Description string    `json:"description"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// Validate checks required fields before the request is sent.
func (u LiveStreamUpload) Validate() error {
	if u.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if u.ArtistID == "" {
		return fmt.Errorf("%w: artist_id", ErrMissingField)
	}
	return nil
}
