package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrInvalidKey  = errors.New("user and record ids are required")
	ErrUnavailable = errors.New("feedback store unavailable")
)
