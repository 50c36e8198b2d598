package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API errors
	ErrAPIRequest = fmt.Errorf("API request failed")
	ErrNotFound   = fmt.Errorf("resource not found")
	// ErrEndpointUnavailable reports an endpoint the platform has not deployed
	// yet. Distinct from a list endpoint returning zero results.
	ErrEndpointUnavailable = fmt.Errorf("endpoint unavailable")

	// Playback errors
	ErrInvalidIndex = fmt.Errorf("queue index out of range")
	ErrEmptyQueue   = fmt.Errorf("playback queue is empty")
	ErrMediaLoad    = fmt.Errorf("media source failed to load")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
