// Package service wires the catalogs, the feedback pipeline and the store
// behind the operations used by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gigmatch/internal/adapters/dataset"
	eventqueue "github.com/okian/gigmatch/internal/adapters/mq/queue"
	workerpool "github.com/okian/gigmatch/internal/adapters/mq/worker"
	"github.com/okian/gigmatch/internal/adapters/repository"
	"github.com/okian/gigmatch/internal/domain/dedupe"
	"github.com/okian/gigmatch/internal/domain/insights"
	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/ranking"
	"github.com/okian/gigmatch/internal/domain/scoring"
	"github.com/okian/gigmatch/internal/domain/types"
	"github.com/okian/gigmatch/pkg/logger"
	"github.com/okian/gigmatch/pkg/metrics"
)

// Catalog names.
const (
	CatalogJobs = dataset.SampleJobs
	CatalogGigs = dataset.SampleGigs
)

// FeedbackStatus reports what SubmitFeedback did with an event.
type FeedbackStatus string

const (
	FeedbackAccepted  FeedbackStatus = "accepted"
	FeedbackDuplicate FeedbackStatus = "duplicate"
)

// Service implements the API dependencies for the recommender.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalogs map[string]*ranking.Catalog
	store    repository.Store
	ownStore bool
	deduper  dedupe.Deduper
	queue    eventqueue.Queue
	pool     *workerpool.Pool

	// Configuration
	jobsPath     string
	gigsPath     string
	jobs         *model.Dataset
	gigs         *model.Dataset
	stopWords    []string
	hasStopWords bool
	trending     []string
	jobWeights   scoring.Weights
	gigWeights   scoring.Weights
	adaptive     bool
	policy       scoring.FeedbackPolicy
	defaultTopN  int
	maxTopN      int
	workerCount  int
	queueSize    int
	dedupeSize   int
	dsn          string
	storeOpts    []repository.Option

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		trending:    insights.DefaultTrendingSkills,
		jobWeights:  scoring.JobWeights(),
		gigWeights:  scoring.GigWeights(),
		adaptive:    true,
		policy:      scoring.DefaultFeedbackPolicy(),
		defaultTopN: 5,
		maxTopN:     50,
		workerCount: runtime.NumCPU(),
		queueSize:   10_000,
		dedupeSize:  100_000,
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the datasets, fits both catalogs and starts the feedback
// workers. Catalog errors wrap ranking.ErrConfiguration.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting recommender service...")

	catalogs, err := s.buildCatalogs()
	if err != nil {
		return err
	}

	store, owned := s.store, false
	if store == nil {
		store, err = s.openStore(ctx)
		if err != nil {
			return err
		}
		owned = true
	}

	q := eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	pool := workerpool.NewPool(s.workerCount, q, store,
		workerpool.WithName("feedback"),
		workerpool.WithLogger(s.logger.Named("worker")),
	)

	// workers outlive the context that started them
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	pool.Start(runCtx)

	s.catalogs = catalogs
	s.store = store
	s.ownStore = owned
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = q
	s.pool = pool
	s.cancel = cancel
	s.started = true

	metrics.UpdateWorkerCount(s.workerCount)
	s.logger.Info(ctx, "recommender service started",
		logger.Int("jobs", catalogs[CatalogJobs].Dataset().Len()),
		logger.Int("gigs", catalogs[CatalogGigs].Dataset().Len()),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Bool("adaptive", s.adaptive),
	)
	return nil
}

func (s *Service) buildCatalogs() (map[string]*ranking.Catalog, error) {
	var err error
	jobs, gigs := s.jobs, s.gigs
	if jobs == nil {
		if jobs, err = dataset.LoadOrSample(s.jobsPath, dataset.SampleJobs); err != nil {
			return nil, fmt.Errorf("%w: jobs dataset: %w", ranking.ErrConfiguration, err)
		}
	}
	if gigs == nil {
		if gigs, err = dataset.LoadOrSample(s.gigsPath, dataset.SampleGigs); err != nil {
			return nil, fmt.Errorf("%w: gigs dataset: %w", ranking.ErrConfiguration, err)
		}
	}

	var common []ranking.CatalogOption
	if s.hasStopWords {
		common = append(common, ranking.WithStopWords(s.stopWords))
	}

	jobCat, err := ranking.NewCatalog(CatalogJobs, jobs, append(common,
		ranking.WithTextField(model.TextDescription),
		ranking.WithScoring(scoring.WithWeights(s.jobWeights)),
		ranking.WithFilters(ranking.Location()),
	)...)
	if err != nil {
		return nil, err
	}

	gigScoring := []scoring.Option{
		scoring.WithWeights(s.gigWeights),
		scoring.WithTrendingSkills(s.trending),
	}
	if s.adaptive {
		gigScoring = append(gigScoring, scoring.WithFeedbackPolicy(s.policy))
	}
	gigCat, err := ranking.NewCatalog(CatalogGigs, gigs, append(common,
		ranking.WithTextField(model.TextSkills),
		ranking.WithScoring(gigScoring...),
		ranking.WithFilters(ranking.BudgetFloor(), ranking.Category()),
	)...)
	if err != nil {
		return nil, err
	}

	out := map[string]*ranking.Catalog{CatalogJobs: jobCat, CatalogGigs: gigCat}
	for name, c := range out {
		metrics.UpdateCatalog(name, c.Dataset().Len(), c.Index().VocabularySize())
	}
	return out, nil
}

func (s *Service) openStore(ctx context.Context) (repository.Store, error) {
	if s.dsn == "" {
		s.logger.Info(ctx, "using in-memory feedback store")
		return repository.NewMemoryStore(), nil
	}
	store, err := repository.OpenMySQL(s.dsn, s.storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("open feedback store: %w", err)
	}
	s.logger.Info(ctx, "using mysql feedback store")
	return store, nil
}

// Stop drains the feedback queue. A store the service opened itself is
// closed and dropped so the next Start opens a fresh one; a store given
// with WithStore stays open and is reused.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping recommender service...")

	var errs []error
	if err := s.pool.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	s.cancel()
	if s.ownStore {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
		s.store = nil
		s.ownStore = false
	}

	s.started = false
	s.logger.Info(ctx, "recommender service stopped",
		logger.Int("processed", int(s.pool.Processed())),
		logger.Int("failed", int(s.pool.Failed())),
	)
	return errors.Join(errs...)
}

// DefaultTopN is the result count used when a request does not give one.
func (s *Service) DefaultTopN() int { return s.defaultTopN }

// catalog returns the named catalog and the store under the read lock.
func (s *Service) catalog(name string) (*ranking.Catalog, repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, nil, ErrNotStarted
	}
	c, ok := s.catalogs[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCatalog, name)
	}
	return c, s.store, nil
}

func (s *Service) capTopN(n int) int {
	if n > s.maxTopN {
		return s.maxTopN
	}
	return n
}

// RecommendJobs ranks job postings for p.
func (s *Service) RecommendJobs(ctx context.Context, p model.Profile, topN int) (types.Recommendations, error) {
	c, _, err := s.catalog(CatalogJobs)
	if err != nil {
		return types.Recommendations{}, err
	}

	results, err := s.rank(ctx, CatalogJobs, c.Ranker, p, topN)
	if err != nil {
		return types.Recommendations{}, err
	}
	return types.Recommendations{
		Catalog: CatalogJobs,
		Entries: types.FromResults(results, false),
	}, nil
}

// RecommendGigs ranks gigs for p with the current feedback snapshot and adds
// pitch texts and learning tips for the skills p lacks.
func (s *Service) RecommendGigs(ctx context.Context, p model.Profile, topN int) (types.Recommendations, error) {
	c, store, err := s.catalog(CatalogGigs)
	if err != nil {
		return types.Recommendations{}, err
	}

	summary, err := store.Summary(ctx)
	if err != nil {
		s.logger.Warn(ctx, "feedback summary unavailable, ranking without ratings", logger.Error(err))
		metrics.RecordErrorByComponent("service", "feedback_summary")
		summary = model.NewFeedbackSummary(nil, 0)
	}

	results, err := s.rank(ctx, CatalogGigs, c.WithFeedback(summary), p, topN)
	if err != nil {
		return types.Recommendations{}, err
	}

	records := make([]model.Record, len(results))
	for i, r := range results {
		records[i] = r.Record
	}
	missing := insights.MissingSkills(p.Skills, records)
	tips := insights.SkillTips(missing)

	return types.Recommendations{
		Catalog:      CatalogGigs,
		Entries:      types.FromResults(results, true),
		Missing:      missing,
		Tips:         tips,
		TipsText:     insights.FormatTips(tips),
		FeedbackRows: summary.Rows(),
	}, nil
}

func (s *Service) rank(ctx context.Context, name string, r *ranking.Ranker, p model.Profile, topN int) ([]ranking.Result, error) {
	start := time.Now()
	results, err := r.Rank(ctx, p, s.capTopN(topN))
	latency := float64(time.Since(start).Microseconds()) / 1000

	switch {
	case errors.Is(err, ranking.ErrInvalidInput):
		metrics.RecordRecommendation(name, metrics.OutcomeInvalid, latency, 0)
		return nil, err
	case err != nil:
		metrics.RecordRecommendation(name, metrics.OutcomeError, latency, 0)
		s.logger.Error(ctx, "ranking failed", logger.String("catalog", name), logger.Error(err))
		return nil, err
	case len(results) == 0:
		metrics.RecordRecommendation(name, metrics.OutcomeEmpty, latency, 0)
	default:
		metrics.RecordRecommendation(name, metrics.OutcomeOK, latency, len(results))
	}

	s.logger.Debug(ctx, "ranked catalog",
		logger.String("catalog", name),
		logger.String("profile", p.ID),
		logger.Int("results", len(results)),
		logger.Float64("latency_ms", latency),
	)
	return results, nil
}

// Trends reports market trends over the gigs catalog.
func (s *Service) Trends(_ context.Context) (insights.Trends, error) {
	c, _, err := s.catalog(CatalogGigs)
	if err != nil {
		return insights.Trends{}, err
	}
	return insights.Analyze(c.Dataset(), s.trending), nil
}

// Record returns a single record of the named catalog.
func (s *Service) Record(_ context.Context, catalog, id string) (types.Entry, error) {
	c, _, err := s.catalog(catalog)
	if err != nil {
		return types.Entry{}, err
	}
	r, ok := c.Dataset().ByID(id)
	if !ok {
		return types.Entry{}, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, catalog, id)
	}
	return types.FromRecord(r), nil
}

// SubmitFeedback validates e, drops duplicate event ids and queues the rating
// for the workers. A full queue returns ErrBackpressure and forgets the event
// id so the client may retry.
func (s *Service) SubmitFeedback(ctx context.Context, e model.FeedbackEvent) (FeedbackStatus, error) {
	c, _, err := s.catalog(CatalogGigs)
	if err != nil {
		return "", err
	}

	e.UserID = strings.TrimSpace(e.UserID)
	e.RecordID = strings.TrimSpace(e.RecordID)
	if err := e.Validate(); err != nil {
		return "", err
	}
	if _, ok := c.Dataset().ByID(e.RecordID); !ok {
		return "", fmt.Errorf("%w: gigs/%s", ErrRecordNotFound, e.RecordID)
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.TS.IsZero() {
		e.TS = time.Now().UTC()
	}

	s.mu.RLock()
	deduper, q := s.deduper, s.queue
	s.mu.RUnlock()

	if deduper.SeenAndRecord(ctx, e.EventID) {
		metrics.RecordFeedbackDuplicate()
		s.logger.Debug(ctx, "duplicate feedback event, skipping", logger.String("eventID", e.EventID))
		return FeedbackDuplicate, nil
	}

	if err := q.Enqueue(ctx, e); err != nil {
		deduper.Unrecord(ctx, e.EventID)
		if errors.Is(err, eventqueue.ErrFull) || errors.Is(err, eventqueue.ErrClosed) {
			return "", fmt.Errorf("%w: %w", ErrBackpressure, err)
		}
		return "", err
	}

	s.logger.Debug(ctx, "feedback queued",
		logger.String("eventID", e.EventID),
		logger.String("userID", e.UserID),
		logger.String("recordID", e.RecordID),
		logger.Int("rating", e.Rating),
	)
	return FeedbackAccepted, nil
}

// SaveRecord bookmarks a gig or job for a user.
func (s *Service) SaveRecord(ctx context.Context, userID, recordID string) error {
	s.mu.RLock()
	started, store, catalogs := s.started, s.store, s.catalogs
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}

	userID, recordID = strings.TrimSpace(userID), strings.TrimSpace(recordID)
	if userID == "" || recordID == "" {
		return repository.ErrInvalidKey
	}
	known := false
	for _, c := range catalogs {
		if _, ok := c.Dataset().ByID(recordID); ok {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, recordID)
	}
	return store.SaveRecord(ctx, userID, recordID)
}

// SavedRecords returns the records a user saved, in save order. Ids that no
// longer resolve in either catalog are skipped.
func (s *Service) SavedRecords(ctx context.Context, userID string) ([]types.Entry, error) {
	s.mu.RLock()
	started, store, catalogs := s.started, s.store, s.catalogs
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	ids, err := store.SavedRecords(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	out := make([]types.Entry, 0, len(ids))
	for _, id := range ids {
		for _, name := range []string{CatalogGigs, CatalogJobs} {
			if r, ok := catalogs[name].Dataset().ByID(id); ok {
				out = append(out, types.FromRecord(r))
				break
			}
		}
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"adaptive":    s.adaptive,
	}

	if s.started {
		queueLen := s.queue.Len()
		rows := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["feedbackRows"] = rows
		stats["dedupeEntries"] = s.deduper.Size()
		stats["processed"] = s.pool.Processed()
		stats["failed"] = s.pool.Failed()
		sizes := make(map[string]int, len(s.catalogs))
		for name, c := range s.catalogs {
			sizes[name] = c.Dataset().Len()
		}
		stats["catalogs"] = sizes

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateFeedbackRows(rows)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
