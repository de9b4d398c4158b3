package service

import (
	"time"

	"github.com/okian/gigmatch/internal/adapters/repository"
	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/scoring"
	"github.com/okian/gigmatch/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of feedback workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the feedback queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many feedback event ids are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPaths sets the jobs and gigs dataset files. Empty paths use the
// embedded samples.
func WithDatasetPaths(jobs, gigs string) Option {
	return func(s *Service) {
		s.jobsPath = jobs
		s.gigsPath = gigs
	}
}

// WithJobs uses ds as the jobs catalog instead of loading a file.
func WithJobs(ds *model.Dataset) Option {
	return func(s *Service) { s.jobs = ds }
}

// WithGigs uses ds as the gigs catalog instead of loading a file.
func WithGigs(ds *model.Dataset) Option {
	return func(s *Service) { s.gigs = ds }
}

// WithStopWords overrides the text index stop list of both catalogs.
func WithStopWords(words []string) Option {
	return func(s *Service) {
		s.stopWords = words
		s.hasStopWords = true
	}
}

// WithTrendingSkills sets the skills scored and reported as trending.
func WithTrendingSkills(skills []string) Option {
	return func(s *Service) {
		if len(skills) > 0 {
			s.trending = skills
		}
	}
}

// WithJobWeights sets the composite weights of the jobs catalog.
func WithJobWeights(w scoring.Weights) Option {
	return func(s *Service) { s.jobWeights = w }
}

// WithGigWeights sets the static weights of the gigs catalog, used when
// adaptive feedback is disabled.
func WithGigWeights(w scoring.Weights) Option {
	return func(s *Service) { s.gigWeights = w }
}

// WithFeedbackPolicy sets the adaptive rating policy of the gigs catalog.
// adaptive=false falls back to the static gig weights.
func WithFeedbackPolicy(adaptive bool, p scoring.FeedbackPolicy) Option {
	return func(s *Service) {
		s.adaptive = adaptive
		s.policy = p
	}
}

// WithTopN sets the default and maximum result counts.
func WithTopN(defaultN, maxN int) Option {
	return func(s *Service) {
		if defaultN > 0 {
			s.defaultTopN = defaultN
		}
		if maxN >= s.defaultTopN {
			s.maxTopN = maxN
		}
	}
}

// WithDatabaseDSN stores feedback in MySQL instead of memory.
func WithDatabaseDSN(dsn string) Option {
	return func(s *Service) { s.dsn = dsn }
}

// WithDatabasePool sets connection pool limits for the MySQL store.
func WithDatabasePool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(s *Service) {
		s.storeOpts = []repository.Option{repository.WithPool(maxOpen, maxIdle, maxLifetime)}
	}
}

// WithStore injects a feedback store. It takes precedence over WithDatabaseDSN.
func WithStore(store repository.Store) Option {
	return func(s *Service) { s.store = store }
}
