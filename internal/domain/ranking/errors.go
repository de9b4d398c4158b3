package ranking

import "errors"

// Sentinel errors for ranking.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfiguration = errors.New("invalid catalog configuration")
)
