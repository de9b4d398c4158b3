package api

import (
	"net/http"
)

// RecordsHandler serves single catalog records.
type RecordsHandler struct {
	deps RecordDependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps RecordDependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleGetRecord handles GET /records/{catalog}/{id} requests.
func (h *RecordsHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_record"
	entry, err := h.deps.Record(r.Context(), r.PathValue("catalog"), r.PathValue("id"))
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
