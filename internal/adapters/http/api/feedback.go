package api

import (
	"net/http"
	"strings"
	"time"

	service "github.com/okian/gigmatch/internal/app"
	"github.com/okian/gigmatch/internal/domain/model"
)

// feedbackRequest mirrors the OpenAPI schema for POST /feedback.
type feedbackRequest struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	RecordID string `json:"record_id"`
	Rating   int    `json:"rating"`
	TS       string `json:"ts"`
}

func (f feedbackRequest) event() (model.FeedbackEvent, error) {
	e := model.FeedbackEvent{
		EventID:  strings.TrimSpace(f.EventID),
		UserID:   f.UserID,
		RecordID: f.RecordID,
		Rating:   f.Rating,
	}
	if f.TS != "" {
		ts, err := time.Parse(time.RFC3339, f.TS)
		if err != nil {
			return e, err
		}
		e.TS = ts
	}
	return e, nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// FeedbackHandler accepts ratings.
type FeedbackHandler struct {
	deps FeedbackDependencies
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(deps FeedbackDependencies) *FeedbackHandler {
	return &FeedbackHandler{deps: deps}
}

// HandlePostFeedback handles POST /feedback requests. Accepted events get 202,
// already seen event ids 200.
func (h *FeedbackHandler) HandlePostFeedback(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_feedback"
	var req feedbackRequest
	if err := decode(r, &req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	e, err := req.event()
	if err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	status, err := h.deps.SubmitFeedback(r.Context(), e)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	if status == service.FeedbackDuplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: string(status), Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: string(status)})
}
