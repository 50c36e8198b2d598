package models

import "time"

// Role enumerates platform user roles.
type Role string

const (
	RoleUser       Role = "user"
	RoleArtist     Role = "artist"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Valid reports whether the role is one of the platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleArtist, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User represents a platform account, optionally with an embedded artist
// profile and the user's latest subscription snapshot.
type User struct {
	UserID        string        `json:"id"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Phone         string        `json:"phone"`
	Locale        string        `json:"locale"`
	CityID        string        `json:"city_id,omitempty"`
	AvatarURL     string        `json:"avatar_url"`
	Role          Role          `json:"role"`
	IsActive      bool          `json:"is_active"`
	IsDeleted     bool          `json:"is_deleted"`
	ArtistProfile *Artist       `json:"artist_profile,omitempty"`
	Subscription  *Subscription `json:"latest_subscription,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// DisplayName returns the user's full name, falling back to the email address.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// UserUpdate carries the mutable profile fields for a partial user update.
type UserUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Locale    *string `json:"locale,omitempty"`
	CityID    *string `json:"city_id,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// Validate rejects updates carrying an unknown role.
func (u UserUpdate) Validate() error {
	if u.Role != nil && !u.Role.Valid() {
		return ErrInvalidField
	}
	return nil
}
