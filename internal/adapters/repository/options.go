package repository

import "time"

// Option applies a configuration option to the GormStore.
type Option func(*GormStore)

// WithAutoMigrate creates or updates the feedback tables on open.
func WithAutoMigrate(enabled bool) Option {
	return func(s *GormStore) {
		s.autoMigrate = enabled
	}
}

// WithPool sets connection pool limits.
func WithPool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(s *GormStore) {
		if maxOpen > 0 {
			s.maxOpen = maxOpen
		}
		if maxIdle > 0 {
			s.maxIdle = maxIdle
		}
		if maxLifetime > 0 {
			s.maxLifetime = maxLifetime
		}
	}
}
