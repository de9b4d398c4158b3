package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/gigmatch/pkg/metrics"
)

// StatsProvider reports runtime counters of the service.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// OpsHandler serves the operational endpoints: the Prometheus exposition
// of the service registry and the JSON stats snapshot.
type OpsHandler struct {
	exposition http.Handler
	stats      StatsProvider
}

// NewOpsHandler creates an ops handler backed by the metrics registry.
func NewOpsHandler(stats StatsProvider) *OpsHandler {
	return &OpsHandler{
		exposition: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
		stats:      stats,
	}
}

// HandleHealth handles GET /healthz.
func (h *OpsHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.exposition.ServeHTTP(w, r)
}

// HandleStats handles GET /stats.
func (h *OpsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.GetStats())
}
