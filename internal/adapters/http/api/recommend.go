package api

import (
	"context"
	"net/http"

	"github.com/okian/gigmatch/internal/adapters/dataset"
	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/types"
)

// recommendRequest is a profile plus the number of results wanted.
// Omitting top_n uses the configured default.
type recommendRequest struct {
	dataset.ProfileDoc
	TopN *int `json:"top_n"`
}

// RecommendHandler serves both catalogs.
type RecommendHandler struct {
	deps RecommendDependencies
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps RecommendDependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandleJobs handles POST /recommend/jobs requests.
func (h *RecommendHandler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "api.recommend_jobs", h.deps.RecommendJobs)
}

// HandleGigs handles POST /recommend/gigs requests.
func (h *RecommendHandler) HandleGigs(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "api.recommend_gigs", h.deps.RecommendGigs)
}

type recommendFunc func(ctx context.Context, p model.Profile, topN int) (types.Recommendations, error)

func (h *RecommendHandler) handle(w http.ResponseWriter, r *http.Request, op string, rank recommendFunc) {
	var req recommendRequest
	if err := decode(r, &req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	topN := h.deps.DefaultTopN()
	if req.TopN != nil {
		topN = *req.TopN
	}

	recs, err := rank(r.Context(), req.Model(), topN)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
