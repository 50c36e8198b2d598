package api

import "fmt"

// APIError carries the HTTP status and platform error detail of a failed
// request.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("platform API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("platform API error: status %d: %s", e.StatusCode, e.Detail)
}
