package api

import (
	"net/http"
)

type saveRequest struct {
	UserID   string `json:"user_id"`
	RecordID string `json:"record_id"`
}

type savedResponse struct {
	UserID  string  `json:"user_id"`
	Records []Entry `json:"records"`
}

// SavedHandler manages user bookmarks.
type SavedHandler struct {
	deps SavedDependencies
}

// NewSavedHandler creates a new saved handler.
func NewSavedHandler(deps SavedDependencies) *SavedHandler {
	return &SavedHandler{deps: deps}
}

// HandlePostSaved handles POST /saved requests.
func (h *SavedHandler) HandlePostSaved(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_saved"
	var req saveRequest
	if err := decode(r, &req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.SaveRecord(r.Context(), req.UserID, req.RecordID); err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// HandleGetSaved handles GET /saved/{user_id} requests.
func (h *SavedHandler) HandleGetSaved(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_saved"
	userID := r.PathValue("user_id")
	records, err := h.deps.SavedRecords(r.Context(), userID)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, savedResponse{UserID: userID, Records: records})
}
