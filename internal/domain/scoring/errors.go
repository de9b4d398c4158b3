package scoring

import "errors"

// ErrInvalidWeights is returned when weights or the feedback policy are out of range.
var ErrInvalidWeights = errors.New("invalid scoring weights")
