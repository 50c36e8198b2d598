package models

import (
	"fmt"
	"time"
)

// SubscriptionStatus enumerates subscription lifecycle states.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionPending   SubscriptionStatus = "pending"
)

// Valid reports whether the status is a known lifecycle state.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionCancelled, SubscriptionExpired, SubscriptionPending:
		return true
	}
	return false
}

// SubscriptionPlan defines a purchasable plan with its feature flags.
type SubscriptionPlan struct {
	PlanID       string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	DurationDays int       `json:"duration_days"`
	AdsFree      bool      `json:"ads_free"`
	HighQuality  bool      `json:"high_quality"`
	Offline      bool      `json:"offline_playback"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Subscription links a user to a plan through a transaction and date range.
type Subscription struct {
	SubscriptionID string             `json:"id"`
	UserID         string             `json:"user_id"`
	PlanID         string             `json:"plan_id"`
	PlanName       string             `json:"plan_name,omitempty"`
	TransactionID  string             `json:"transaction_id"`
	Status         SubscriptionStatus `json:"status"`
	StartsAt       time.Time          `json:"starts_at"`
	EndsAt         time.Time          `json:"ends_at"`
	CreatedAt      time.Time          `json:"created_at"`
}

// PlanUpload carries the fields for creating or updating a subscription plan.
type PlanUpload struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	DurationDays int     `json:"duration_days"`
	AdsFree      bool    `json:"ads_free"`
	HighQuality  bool    `json:"high_quality"`
	Offline      bool    `json:"offline_playback"`
	IsActive     bool    `json:"is_active"`
}

// Validate checks required plan fields before the request is sent.
func (u PlanUpload) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if u.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidField)
	}
	if u.DurationDays <= 0 {
		return fmt.Errorf("%w: duration_days must be positive", ErrInvalidField)
	}
	return nil
}
