// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/gigmatch/internal/app"
	"github.com/okian/gigmatch/internal/adapters/repository"
	"github.com/okian/gigmatch/internal/domain/insights"
	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/ranking"
	"github.com/okian/gigmatch/internal/domain/types"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	RecommendDependencies
	FeedbackDependencies
	SavedDependencies
	RecordDependencies
	TrendsDependencies
}

// RecommendDependencies ranks catalogs for a profile.
type RecommendDependencies interface {
	RecommendJobs(ctx context.Context, p model.Profile, topN int) (types.Recommendations, error)
	RecommendGigs(ctx context.Context, p model.Profile, topN int) (types.Recommendations, error)
	DefaultTopN() int
}

// FeedbackDependencies accepts ratings for asynchronous processing.
type FeedbackDependencies interface {
	SubmitFeedback(ctx context.Context, e model.FeedbackEvent) (service.FeedbackStatus, error)
}

// SavedDependencies stores per-user bookmarks.
type SavedDependencies interface {
	SaveRecord(ctx context.Context, userID, recordID string) error
	SavedRecords(ctx context.Context, userID string) ([]types.Entry, error)
}

// RecordDependencies looks up single records.
type RecordDependencies interface {
	Record(ctx context.Context, catalog, id string) (types.Entry, error)
}

// TrendsDependencies reports market trends.
type TrendsDependencies interface {
	Trends(ctx context.Context) (insights.Trends, error)
}

// Entry mirrors the read shape of one recommendation.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	opsHandler       *OpsHandler
	recommendHandler *RecommendHandler
	feedbackHandler  *FeedbackHandler
	savedHandler     *SavedHandler
	recordsHandler   *RecordsHandler
	trendsHandler    *TrendsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		opsHandler:       NewOpsHandler(statsProvider),
		recommendHandler: NewRecommendHandler(deps),
		feedbackHandler:  NewFeedbackHandler(deps),
		savedHandler:     NewSavedHandler(deps),
		recordsHandler:   NewRecordsHandler(deps),
		trendsHandler:    NewTrendsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.opsHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.opsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /recommend/jobs", MetricsMiddleware(s.recommendHandler.HandleJobs, "recommend_jobs"))
	mux.HandleFunc("POST /recommend/gigs", MetricsMiddleware(s.recommendHandler.HandleGigs, "recommend_gigs"))
	mux.HandleFunc("GET /trends", MetricsMiddleware(s.trendsHandler.HandleTrends, "trends"))
	mux.HandleFunc("POST /feedback", MetricsMiddleware(s.feedbackHandler.HandlePostFeedback, "feedback"))
	mux.HandleFunc("POST /saved", MetricsMiddleware(s.savedHandler.HandlePostSaved, "saved"))
	mux.HandleFunc("GET /saved/{user_id}", MetricsMiddleware(s.savedHandler.HandleGetSaved, "saved"))
	mux.HandleFunc("GET /records/{catalog}/{id}", MetricsMiddleware(s.recordsHandler.HandleGetRecord, "records"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes err with the status its kind maps to.
func fail(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ranking.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidProfile),
		errors.Is(err, model.ErrInvalidRating),
		errors.Is(err, model.ErrInvalidFeedback),
		errors.Is(err, repository.ErrInvalidKey):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound),
		errors.Is(err, service.ErrRecordNotFound),
		errors.Is(err, service.ErrUnknownCatalog):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBackpressure),
		errors.Is(err, service.ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, service.ErrNotStarted),
		errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
