package model

import "errors"

// Sentinel kinds for domain model errors.
var (
	ErrInvalidRecord   = errors.New("invalid record")
	ErrDuplicateRecord = errors.New("duplicate record id")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidFeedback = errors.New("invalid feedback")
)
