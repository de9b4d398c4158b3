package api

import (
	"net/http"
)

// TrendsHandler reports market trends.
type TrendsHandler struct {
	deps TrendsDependencies
}

// NewTrendsHandler creates a new trends handler.
func NewTrendsHandler(deps TrendsDependencies) *TrendsHandler {
	return &TrendsHandler{deps: deps}
}

// HandleTrends handles GET /trends requests.
func (h *TrendsHandler) HandleTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.deps.Trends(r.Context())
	if err != nil {
		fail(w, Wrap("api.get_trends", err))
		return
	}
	writeJSON(w, http.StatusOK, trends)
}
