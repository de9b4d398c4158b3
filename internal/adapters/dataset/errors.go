package dataset

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrUnknownSample     = errors.New("unknown sample dataset")
)
