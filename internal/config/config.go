// Package config defines service configuration and its layered loader.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/okian/gigmatch/internal/domain/insights"
	"github.com/okian/gigmatch/internal/domain/scoring"
	"github.com/okian/gigmatch/internal/domain/textindex"
)

// Feedback configures the adaptive rating weight of the gigs catalog.
type Feedback struct {
	// Adaptive switches between the feedback policy and static gig weights.
	Adaptive bool `koanf:"adaptive"`

	scoring.FeedbackPolicy `koanf:",squash"`
}

// DatabasePool limits the MySQL connection pool. Zero keeps the store default.
type DatabasePool struct {
	MaxOpen     int           `koanf:"max_open"`
	MaxIdle     int           `koanf:"max_idle"`
	MaxLifetime time.Duration `koanf:"max_lifetime"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoder: json or console.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// JobsDataset and GigsDataset are CSV, YAML or JSON files. Empty means
	// the embedded sample.
	JobsDataset string `koanf:"jobs_dataset"`
	GigsDataset string `koanf:"gigs_dataset"`

	StopWords      []string `koanf:"stop_words"`
	TrendingSkills []string `koanf:"trending_skills"`

	// DefaultTopN is used when a request omits top_n; MaxTopN caps it.
	DefaultTopN int `koanf:"default_top_n"`
	MaxTopN     int `koanf:"max_top_n"`

	JobWeights scoring.Weights `koanf:"job_weights"`
	GigWeights scoring.Weights `koanf:"gig_weights"`
	Feedback   Feedback        `koanf:"feedback"`

	// EventQueueSize bounds the in-memory feedback queue.
	EventQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of feedback workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many feedback event ids are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// DatabaseDSN selects the MySQL feedback store. Empty keeps feedback in memory.
	DatabaseDSN  string       `koanf:"database_dsn"`
	DatabasePool DatabasePool `koanf:"database_pool"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "json",
		Addr:           ":9080",
		StopWords:      append([]string(nil), textindex.DefaultStopWords...),
		TrendingSkills: append([]string(nil), insights.DefaultTrendingSkills...),
		DefaultTopN:    5,
		MaxTopN:        50,
		JobWeights:     scoring.JobWeights(),
		GigWeights:     scoring.GigWeights(),
		Feedback: Feedback{
			Adaptive:       true,
			FeedbackPolicy: scoring.DefaultFeedbackPolicy(),
		},
		EventQueueSize: 10_000,
		WorkerCount:    runtime.NumCPU(),
		DedupeSize:     100_000,
	}
}

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "json" && c.LogFormat != "console":
		return fmt.Errorf("%w: log_format must be json or console, got %q", ErrInvalidConfig, c.LogFormat)
	case c.DefaultTopN <= 0:
		return fmt.Errorf("%w: default_top_n must be positive", ErrInvalidConfig)
	case c.MaxTopN < c.DefaultTopN:
		return fmt.Errorf("%w: max_top_n must be at least default_top_n", ErrInvalidConfig)
	case c.EventQueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.DatabasePool.MaxOpen < 0, c.DatabasePool.MaxIdle < 0, c.DatabasePool.MaxLifetime < 0:
		return fmt.Errorf("%w: database_pool values must not be negative", ErrInvalidConfig)
	}
	if err := c.JobWeights.Validate(); err != nil {
		return fmt.Errorf("%w: job_weights: %w", ErrInvalidConfig, err)
	}
	if err := c.GigWeights.Validate(); err != nil {
		return fmt.Errorf("%w: gig_weights: %w", ErrInvalidConfig, err)
	}
	if c.Feedback.Adaptive {
		if err := c.Feedback.FeedbackPolicy.Validate(); err != nil {
			return fmt.Errorf("%w: feedback: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
