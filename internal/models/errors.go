package models

import "fmt"

var (
	ErrMissingField = fmt.Errorf("missing required field")
	ErrInvalidField = fmt.Errorf("invalid field value")
)
