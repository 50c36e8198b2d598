package models

import "time"

// Advertisement represents an ad campaign served to free-tier listeners.
type Advertisement struct {
	AdID        string     `json:"id"`
	Title       string     `json:"title"`
	Advertiser  string     `json:"advertiser"`
	AudioFile   string     `json:"audio_file"`
	ImageURL    string     `json:"image_url"`
	TargetURL   string     `json:"target_url"`
	IsActive    bool       `json:"is_active"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Impressions int        `json:"impressions"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Notification represents a platform notification pushed to a user.
type Notification struct {
	NotificationID string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	IsRead         bool      `json:"is_read"`
	SentAt         time.Time `json:"sent_at"`
}
