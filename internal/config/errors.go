package config

import "errors"

// Load and Validate wrap these so callers can tell a broken source
// (unreadable file, bad env value) from values that parsed but are out of range.
var (
	ErrLoadConfig    = errors.New("load config failed")
	ErrInvalidConfig = errors.New("invalid config")
)
