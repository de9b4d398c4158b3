package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrUnknownCatalog = errors.New("unknown catalog")
	ErrRecordNotFound = errors.New("record not found")
	ErrBackpressure   = errors.New("feedback queue is full")
)
